package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"visitors/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: structures.StoreConfig{
			Root:     ".",
			DirMode:  0755,
			FileMode: 0644,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Cache: structures.CacheConfig{
			TTL: 30 * time.Second,
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyStoreRoot(t *testing.T) {
	c := validConfig()
	c.Store.Root = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_CacheWithoutSize(t *testing.T) {
	c := validConfig()
	c.Cache.Enabled = true
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())

	c.Cache.Size = 8
	assert.NoError(t, NewCnfValidator(c).Validate())
}

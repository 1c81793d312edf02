package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"visitors/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("store.root", ".")
	v.SetDefault("store.dirMode", 0o755)
	v.SetDefault("store.fileMode", 0o644)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0o644)
	v.SetDefault("cache.ttl", "30s")

	v.BindEnv("logger.level", "VISITORS_LOG_LEVEL")
	v.BindEnv("store.root", "VISITORS_STORE_ROOT")
	v.BindEnv("cache.enabled", "VISITORS_CACHE_ENABLED")
	v.BindEnv("cache.size", "VISITORS_CACHE_SIZE")
	v.BindEnv("metrics.enabled", "VISITORS_METRICS_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "VisitorRecordStore"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

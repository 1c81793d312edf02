package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}

// Pattern returns the ServeMux pattern for the route, e.g. "GET /visitor".
func (r Route) Pattern() string {
	return r.Method + " " + r.Url
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

// StoreConfig describes where visitor files live. Root is the working
// directory the fixed "visitors" folder is resolved against.
type StoreConfig struct {
	Root     string `yaml:"root" validate:"required"`
	DirMode  uint32 `yaml:"dirMode" validate:"required|uint"`
	FileMode uint32 `yaml:"fileMode" validate:"required|uint"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Store     StoreConfig   `yaml:"store"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}

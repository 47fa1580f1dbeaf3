package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir     string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ExportsDir  string `yaml:"exports_dir" envconfig:"EXPORTS_DIR" default:"data/exports"`
	LogsDir     string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
	DatasetFile string `yaml:"dataset_file" envconfig:"DATASET_FILE" default:"data/Base_Dados_Cursos.csv"`
}

// Load loads configuration from environment variables and config file.
// Environment variables win over the file; tagged defaults fill the rest.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TDPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func getConfigFilePath() string {
	if path := os.Getenv("TDPULSE_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// mergeConfigs overlays file values onto the env config wherever the file
// set a non-zero value that the environment did not override. Because the
// env pass already applied tag defaults, an env value equal to the tag
// default is treated as unset and yields to the file.
func mergeConfigs(fileConfig, envConfig Config) Config {
	defaults := defaultConfig()

	merged := envConfig
	overlayString := func(dst *string, fileVal, defVal string) {
		if fileVal != "" && *dst == defVal {
			*dst = fileVal
		}
	}
	overlayInt := func(dst *int, fileVal, defVal int) {
		if fileVal != 0 && *dst == defVal {
			*dst = fileVal
		}
	}
	overlayDuration := func(dst *time.Duration, fileVal, defVal time.Duration) {
		if fileVal != 0 && *dst == defVal {
			*dst = fileVal
		}
	}

	overlayInt(&merged.Server.Port, fileConfig.Server.Port, defaults.Server.Port)
	overlayDuration(&merged.Server.ReadTimeout, fileConfig.Server.ReadTimeout, defaults.Server.ReadTimeout)
	overlayDuration(&merged.Server.WriteTimeout, fileConfig.Server.WriteTimeout, defaults.Server.WriteTimeout)
	overlayDuration(&merged.Server.IdleTimeout, fileConfig.Server.IdleTimeout, defaults.Server.IdleTimeout)
	overlayInt(&merged.Server.MaxHeaderBytes, fileConfig.Server.MaxHeaderBytes, defaults.Server.MaxHeaderBytes)
	if fileConfig.Server.MaxUploadBytes != 0 && merged.Server.MaxUploadBytes == defaults.Server.MaxUploadBytes {
		merged.Server.MaxUploadBytes = fileConfig.Server.MaxUploadBytes
	}
	overlayDuration(&merged.Server.ShutdownTimeout, fileConfig.Server.ShutdownTimeout, defaults.Server.ShutdownTimeout)

	if fileConfig.RateLimit.RPS != 0 && merged.RateLimit.RPS == defaults.RateLimit.RPS {
		merged.RateLimit.RPS = fileConfig.RateLimit.RPS
	}
	overlayInt(&merged.RateLimit.Burst, fileConfig.RateLimit.Burst, defaults.RateLimit.Burst)

	overlayString(&merged.Logging.Level, fileConfig.Logging.Level, defaults.Logging.Level)
	overlayString(&merged.Logging.Format, fileConfig.Logging.Format, defaults.Logging.Format)
	overlayString(&merged.Logging.Output, fileConfig.Logging.Output, defaults.Logging.Output)
	overlayString(&merged.Logging.FilePath, fileConfig.Logging.FilePath, defaults.Logging.FilePath)

	overlayString(&merged.Paths.DataDir, fileConfig.Paths.DataDir, defaults.Paths.DataDir)
	overlayString(&merged.Paths.ExportsDir, fileConfig.Paths.ExportsDir, defaults.Paths.ExportsDir)
	overlayString(&merged.Paths.LogsDir, fileConfig.Paths.LogsDir, defaults.Paths.LogsDir)
	overlayString(&merged.Paths.DatasetFile, fileConfig.Paths.DatasetFile, defaults.Paths.DatasetFile)

	return merged
}

// defaultConfig mirrors the envconfig default tags. Keep the two in sync
// when adding fields.
func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			MaxUploadBytes:  32 << 20,
			ShutdownTimeout: 30 * time.Second,
		},
		RateLimit: RateLimitConfig{Enabled: true, RPS: 100, Burst: 50},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			DataDir:     "data",
			ExportsDir:  "data/exports",
			LogsDir:     "logs",
			DatasetFile: "data/Base_Dados_Cursos.csv",
		},
	}
}

// resolvePaths makes all configured paths absolute, relative to the
// working directory, and creates the directories.
func (c *Config) resolvePaths() error {
	base, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	abs := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.Paths.DataDir = abs(c.Paths.DataDir)
	c.Paths.ExportsDir = abs(c.Paths.ExportsDir)
	c.Paths.LogsDir = abs(c.Paths.LogsDir)
	c.Paths.DatasetFile = abs(c.Paths.DatasetFile)
	if !filepath.IsAbs(c.Logging.FilePath) {
		c.Logging.FilePath = filepath.Join(base, c.Logging.FilePath)
	}

	for _, dir := range []string{c.Paths.DataDir, c.Paths.ExportsDir, c.Paths.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit rps and burst must be positive when enabled")
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}
	return nil
}

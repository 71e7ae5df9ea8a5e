package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	defaultPort           = "8090"
	defaultMaxUploadBytes = 52428800 // 50MB
	defaultWorkerCount    = 4
	defaultMaxQueueSize   = 100
	defaultJobTTL         = 1 * time.Hour
	defaultOutputFilename = "cleaned_document.pdf"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. CLEANFILE_MAX_UPLOAD_BYTES.
const EnvPrefix = "CLEANFILE"

type Config struct {
	Port string

	// Auth; empty disables bearer-token checks.
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Extraction and output
	LayoutMode     bool
	OutputFilename string

	// Logging
	LogLevel  string
	LogFormat string
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", defaultPort)
	v.SetDefault("api_key", "")
	v.SetDefault("worker_count", defaultWorkerCount)
	v.SetDefault("max_queue_size", defaultMaxQueueSize)
	v.SetDefault("max_upload_bytes", defaultMaxUploadBytes)
	v.SetDefault("job_ttl", defaultJobTTL)
	v.SetDefault("layout_mode", true)
	v.SetDefault("output_filename", defaultOutputFilename)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
}

// BindEnv makes v read CLEANFILE_* environment variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from v. Non-positive limits fall back to
// their defaults.
func Load(v *viper.Viper) Config {
	cfg := Config{
		Port:   v.GetString("port"),
		APIKey: v.GetString("api_key"),

		WorkerCount:  v.GetInt("worker_count"),
		MaxQueueSize: v.GetInt("max_queue_size"),

		MaxUploadBytes: v.GetInt64("max_upload_bytes"),

		JobTTL: v.GetDuration("job_ttl"),

		LayoutMode:     v.GetBool("layout_mode"),
		OutputFilename: v.GetString("output_filename"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = defaultWorkerCount
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = defaultMaxQueueSize
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = defaultJobTTL
	}
	if cfg.OutputFilename == "" {
		cfg.OutputFilename = defaultOutputFilename
	}

	return cfg
}

func (c Config) Validate() error {
	if strings.ContainsAny(c.OutputFilename, `/\"`) {
		return fmt.Errorf("output_filename %q must be a bare file name", c.OutputFilename)
	}
	if !strings.HasSuffix(strings.ToLower(c.OutputFilename), ".pdf") {
		return fmt.Errorf("output_filename %q must end in .pdf", c.OutputFilename)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	return nil
}

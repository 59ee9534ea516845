// Package config provides configuration types, defaults, validation and
// persistence for dbug. Values are loaded by viper in cmd and decoded into
// Config through mapstructure tags.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/zjrosen/dbug/internal/log"
	"github.com/zjrosen/dbug/internal/paths"
)

// DefaultAddr matches the port the desktop app always listened on.
const DefaultAddr = "127.0.0.1:53821"

// Config holds all configuration options for dbug.
type Config struct {
	Server      ServerConfig  `mapstructure:"server"`
	Storage     StorageConfig `mapstructure:"storage"`
	AutoRefresh bool          `mapstructure:"auto_refresh"`
	UI          UIConfig      `mapstructure:"ui"`
	Theme       ThemeConfig   `mapstructure:"theme"`
	Tracing     TracingConfig `mapstructure:"tracing"`
}

// ServerConfig configures the HTTP ingestion endpoint.
type ServerConfig struct {
	Enabled      bool       `mapstructure:"enabled"`
	Addr         string     `mapstructure:"addr"`
	MaxBodyBytes int64      `mapstructure:"max_body_bytes"`
	CORS         CORSConfig `mapstructure:"cors"`
}

// CORSConfig is the cross-origin policy applied to every response.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"` // "*" allows any origin
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age"` // seconds
}

// StorageConfig locates the payload database.
type StorageConfig struct {
	// Path is the database file, or a directory to hold payloads.db.
	// Default: ~/.dbug/payloads.db
	Path string `mapstructure:"path"`

	// InMemory keeps payloads only for the lifetime of the process.
	InMemory bool `mapstructure:"in_memory"`
}

// UIConfig holds viewer options.
type UIConfig struct {
	IndentSize       int    `mapstructure:"indent_size"`
	LineNumbers      bool   `mapstructure:"line_numbers"`
	AutoExpandNewest bool   `mapstructure:"auto_expand_newest"`
	RenderCache      bool   `mapstructure:"render_cache"`
	MarkdownStyle    string `mapstructure:"markdown_style"` // "dark" (default) or "light"
	ListLimit        int    `mapstructure:"list_limit"`     // 0 shows every payload
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in palette. Empty means "default".
	Preset string `mapstructure:"preset"`

	// Colors overrides individual color tokens, either nested:
	//   colors:
	//     palette:
	//       primary:
	//         base: "#FF0000"
	// or as quoted dot notation:
	//   colors:
	//     "palette.primary.base": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns Colors with nested maps collapsed to dot keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// yaml.v2 style decoding produces map[any]any
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				if s, ok := mk.(string); ok {
					converted[s] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// TracingConfig configures OpenTelemetry spans for ingestion requests.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Exporter is one of "none", "file", "stdout", "otlp".
	Exporter string `mapstructure:"exporter"`

	// FilePath is the JSONL output for the "file" exporter.
	// Default: ~/.config/dbug/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the gRPC collector for the "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate is the fraction of traces kept, 0.0 to 1.0.
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns ~/.config/dbug/traces/traces.jsonl, or ""
// when the home directory is unknown.
func DefaultTracesFilePath() string {
	dir := paths.ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// DefaultCORS allows any origin to POST JSON, as the desktop app did.
func DefaultCORS() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Requested-With"},
		MaxAge:         3600,
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Enabled:      true,
			Addr:         DefaultAddr,
			MaxBodyBytes: 10 << 20,
			CORS:         DefaultCORS(),
		},
		Storage: StorageConfig{
			Path: filepath.Join(paths.DataDir(), paths.DBFileName),
		},
		AutoRefresh: true,
		UI: UIConfig{
			IndentSize:       2,
			LineNumbers:      true,
			AutoExpandNewest: true,
			RenderCache:      true,
			MarkdownStyle:    "dark",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // derived at startup
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateServer(cfg.Server); err != nil {
		return err
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateServer checks the ingestion endpoint settings.
func ValidateServer(s ServerConfig) error {
	if s.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	_, port, err := net.SplitHostPort(s.Addr)
	if err != nil {
		return fmt.Errorf("server.addr %q: %w", s.Addr, err)
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("server.addr %q: invalid port", s.Addr)
	}
	if s.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", s.MaxBodyBytes)
	}
	if s.CORS.MaxAge < 0 {
		return fmt.Errorf("server.cors.max_age must not be negative, got %d", s.CORS.MaxAge)
	}
	return nil
}

// ValidateUI checks viewer settings.
func ValidateUI(ui UIConfig) error {
	if ui.IndentSize < 1 || ui.IndentSize > 8 {
		return fmt.Errorf("ui.indent_size must be between 1 and 8, got %d", ui.IndentSize)
	}
	switch ui.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
	if ui.ListLimit < 0 {
		return fmt.Errorf("ui.list_limit must not be negative, got %d", ui.ListLimit)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	switch tracing.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
	}

	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as YAML with comments.
func DefaultConfigTemplate() string {
	return `# dbug configuration

# Webhook ingestion endpoint. POST any JSON body to any path.
server:
  enabled: true
  addr: 127.0.0.1:53821
  max_body_bytes: 10485760
  cors:
    allowed_origins: ["*"]
    allowed_methods: [POST, OPTIONS]
    allowed_headers: [Content-Type, Authorization, Accept, Origin, X-Requested-With]
    max_age: 3600

# Where payloads are stored
storage:
  path: ~/.dbug/payloads.db
  # in_memory: true   # keep payloads only while dbug runs

# Reload the list when another dbug process writes the database
auto_refresh: true

# Viewer settings
ui:
  indent_size: 2            # spaces per nesting level
  line_numbers: true        # show source line numbers beside JSON
  auto_expand_newest: true  # open each payload as it arrives
  render_cache: true        # memoize highlighted lines
  # markdown_style: dark    # help screen style: "dark" (default) or "light"
  # list_limit: 0           # maximum payloads listed, 0 for all

# Theme configuration
theme:
  # Use a preset (run 'dbug themes' to see available presets):
  # preset: catppuccin-mocha
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   palette.primary.base: "#89B4FA"
  #   palette.success.base: "#A6E3A1"

# Tracing of ingestion requests
# tracing:
#   enabled: false
#   exporter: file                 # none, file, stdout, otlp
#   file_path: ~/.config/dbug/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig writes DefaultConfigTemplate to configPath, creating
// the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StorageConfig locates the record database.
type StorageConfig struct {
	// Path is the SQLite file holding the record collections.
	Path string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds UI preferences.
type DisplayConfig struct {
	// Theme is the default color scheme ("light" or "dark"). The
	// runtime toggle persists its choice alongside the records and
	// wins over this value once set.
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// CaptureConfig holds voice capture settings.
type CaptureConfig struct {
	// Command is an external program whose stdout is the finished
	// transcript. When set it takes precedence over the speech API.
	Command string `mapstructure:"command" yaml:"command"`

	// RecordCommand records microphone audio into the WAV file passed
	// as its final argument. Required for the speech API path.
	RecordCommand string `mapstructure:"record_command" yaml:"record_command"`

	// SpeechURL is the base URL of the transcription API.
	SpeechURL string `mapstructure:"speech_url" yaml:"speech_url"`

	// SpeechModel is the transcription model identifier.
	SpeechModel string `mapstructure:"speech_model" yaml:"speech_model"`

	// SearchURL is the search-engine prefix used when a spoken phrase
	// is not a URL; the URL-encoded transcript is appended to it.
	SearchURL string `mapstructure:"search_url" yaml:"search_url"`
}

// MailboxConfig holds the optional mail-in capture source settings.
// The account password lives in the system keyring, never here.
type MailboxConfig struct {
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled"`
	Host        string `mapstructure:"host" yaml:"host"`
	Port        int    `mapstructure:"port" yaml:"port"`
	Username    string `mapstructure:"username" yaml:"username"`
	Security    string `mapstructure:"security" yaml:"security"`
	Folder      string `mapstructure:"folder" yaml:"folder"`
	PollMinutes int    `mapstructure:"poll_minutes" yaml:"poll_minutes"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Capture CaptureConfig `mapstructure:"capture" yaml:"capture"`
	Mailbox MailboxConfig `mapstructure:"mailbox" yaml:"mailbox"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/voicedesk/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "voicedesk", "config.yaml")
}

// DefaultStoragePath returns the default location of the record database.
func DefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "voicedesk.db")
	}
	return filepath.Join(home, ".config", "voicedesk", "voicedesk.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{Path: DefaultStoragePath()},
		Display: DisplayConfig{Theme: "dark"},
		Capture: CaptureConfig{
			SpeechURL:   "https://api.openai.com/v1",
			SpeechModel: "whisper-1",
			SearchURL:   "https://www.google.com/search?q=",
		},
		Mailbox: MailboxConfig{
			Port:        993,
			Security:    "ssl",
			Folder:      "INBOX",
			PollMinutes: 5,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.path", DefaultStoragePath())
	v.SetDefault("display.theme", "dark")
	v.SetDefault("capture.speech_url", "https://api.openai.com/v1")
	v.SetDefault("capture.speech_model", "whisper-1")
	v.SetDefault("capture.search_url", "https://www.google.com/search?q=")
	v.SetDefault("mailbox.port", 993)
	v.SetDefault("mailbox.security", "ssl")
	v.SetDefault("mailbox.folder", "INBOX")
	v.SetDefault("mailbox.poll_minutes", 5)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("display", cfg.Display)
	v.Set("capture", cfg.Capture)
	v.Set("mailbox", cfg.Mailbox)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

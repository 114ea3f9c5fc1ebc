package config

import (
	"time"

	"prizedeck/internal/errors"

	"github.com/caarlos0/env/v11"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Deck    DeckConfig
	Columns ColumnConfig
	Log     LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	GinMode         string        `env:"GIN_MODE" envDefault:"release"`
	MaxUploadMB     int           `env:"MAX_UPLOAD_MB" envDefault:"50"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	PreviewRows     int           `env:"PREVIEW_ROWS" envDefault:"200"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// MaxUploadBytes is the per-file upload cap.
func (s ServerConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) * 1024 * 1024
}

// DeckConfig holds slide generation settings
type DeckConfig struct {
	HeaderLayout      int    `env:"DECK_HEADER_LAYOUT" envDefault:"0"`
	ParticipantLayout int    `env:"DECK_PARTICIPANT_LAYOUT" envDefault:"1"`
	OutputName        string `env:"DECK_OUTPUT_NAME" envDefault:"Punten_Presentatie_2025.pptx"`
	SheetPrefix       string `env:"DECK_SHEET_PREFIX" envDefault:"Punten "`
	LabelsFile        string `env:"DECK_LABELS_FILE"`
}

// ColumnConfig names the spreadsheet columns read for every result row
type ColumnConfig struct {
	Location string `env:"COLUMN_LOCATION" envDefault:"Lokatie"`
	Category string `env:"COLUMN_CATEGORY" envDefault:"Reeks"`
	Name     string `env:"COLUMN_NAME" envDefault:"Naam"`
	City     string `env:"COLUMN_CITY" envDefault:"Stad"`
	Country  string `env:"COLUMN_COUNTRY" envDefault:"Land"`
	Prize    string `env:"COLUMN_PRIZE" envDefault:"Prijscategorie"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"INFO"`
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to parse environment")
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if cfg.Server.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if cfg.Server.SessionTTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	if cfg.Deck.HeaderLayout < 0 || cfg.Deck.ParticipantLayout < 0 {
		return errors.ConfigInvalid("layout indexes cannot be negative")
	}
	if cfg.Deck.OutputName == "" {
		return errors.ConfigInvalid("DECK_OUTPUT_NAME is required")
	}
	if cfg.Columns.Location == "" || cfg.Columns.Category == "" {
		return errors.ConfigInvalid("location and category columns are required")
	}
	return nil
}

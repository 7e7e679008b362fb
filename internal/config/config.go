package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Database struct {
	Address      string `envconfig:"MONGO_ADDRESS" default:"mongodb://localhost:27017"`
	DatabaseName string `envconfig:"MONGO_DATABASE" default:"tactics"`
	Collection   string `envconfig:"MONGO_COLLECTION" default:"puzzles"`
}

type Stockfish struct {
	Path string   `envconfig:"STOCKFISH_PATH" default:"stockfish"`
	Args []string `envconfig:"STOCKFISH_ARGS"`
}

// TrainerConfiguration configures the interactive trainer.
type TrainerConfiguration struct {
	ServerURL string        `envconfig:"TACTICS_SERVER_URL" default:"https://tactics.exoapi.app"`
	Timeout   time.Duration `envconfig:"TACTICS_TIMEOUT" default:"30s"`
	LogLevel  string        `envconfig:"TACTICS_LOG_LEVEL" default:"warn"`
	NoColor   bool          `envconfig:"NO_COLOR"`
}

// ServerConfiguration configures the tactics server.
type ServerConfiguration struct {
	Server struct {
		Host string `envconfig:"SERVER_HOST"`
		Port string `envconfig:"SERVER_PORT" default:"8080"`
	}
	Database  Database
	Stockfish Stockfish
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
}

type ScraperConfiguration struct {
	Database  Database
	Stockfish Stockfish
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
}

func InitTrainerConfig() (*TrainerConfiguration, error) {
	cfg := &TrainerConfiguration{}
	err := envconfig.Process("", cfg)
	return cfg, err
}

func InitServerConfig() (*ServerConfiguration, error) {
	cfg := &ServerConfiguration{}
	err := envconfig.Process("", cfg)
	return cfg, err
}

func InitScraperConfig() (*ScraperConfiguration, error) {
	cfg := &ScraperConfiguration{}
	err := envconfig.Process("", cfg)
	return cfg, err
}

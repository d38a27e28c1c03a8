package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`

	Piece     string `yaml:"piece" env:"BOT_PIECE" env-default:"O"`
	ServerURL string `yaml:"server-url" env:"SERVER_URL" env-default:"ws://localhost:8080/ws"`

	SearchDepth     int           `yaml:"search-depth" env:"SEARCH_DEPTH" env-default:"3"`
	DisablePruning  bool          `yaml:"disable-pruning" env:"DISABLE_PRUNING"`
	IdleTimeout     time.Duration `yaml:"idle-timeout" env:"IDLE_TIMEOUT" env-default:"30s"`
	DecisionTimeout time.Duration `yaml:"decision-timeout" env:"DECISION_TIMEOUT" env-default:"10s"`

	Redis Redis `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads path, applies env overrides and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if _, err := entity.ParsePlayer(that.Piece); err != nil {
		return fmt.Errorf("%w: piece: %w", ErrInvalidConfig, err)
	}

	if that.SearchDepth < 1 {
		return fmt.Errorf("%w: search-depth must be at least 1, got %d", ErrInvalidConfig, that.SearchDepth)
	}

	if that.ServerURL == "" {
		return fmt.Errorf("%w: server-url is empty", ErrInvalidConfig)
	}

	return nil
}

// BotPiece returns the validated identity.
func (that *Config) BotPiece() entity.Piece {
	piece, _ := entity.ParsePlayer(that.Piece)

	return piece
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MongoDB  MongoDBConfig  `mapstructure:"mongodb"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Game     GameConfig     `mapstructure:"game"`
}

// ServerConfig holds the admin/observability HTTP server configuration
type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

// TelegramConfig holds the bot transport configuration
type TelegramConfig struct {
	Token         string `mapstructure:"token"`
	UpdateTimeout int    `mapstructure:"update_timeout"` // long-poll timeout in seconds
	Debug         bool   `mapstructure:"debug"`
}

// RedisConfig holds Redis connection configuration for the event journal
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URI      string `mapstructure:"uri"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MongoDBConfig holds MongoDB connection configuration for the game archive
type MongoDBConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	ArchiveColl string `mapstructure:"archive_collection"`
}

// JWTConfig holds JWT configuration for the admin API
type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration int    `mapstructure:"expiration"` // in hours
}

// GameConfig holds the session ruleset
type GameConfig struct {
	StartingCash int `mapstructure:"starting_cash"`
	GoReward     int `mapstructure:"go_reward"`
	MinPlayers   int `mapstructure:"min_players"`
	MaxPlayers   int `mapstructure:"max_players"`
	JailTurns    int `mapstructure:"jail_turns"`
}

// Load reads configuration from a file or environment variables
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/monopolybot")

	// Environment variables
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found; we'll just use environment and defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", 15)
	viper.SetDefault("server.write_timeout", 15)

	// Telegram defaults
	viper.SetDefault("telegram.token", "")
	viper.SetDefault("telegram.update_timeout", 30)
	viper.SetDefault("telegram.debug", false)

	// Redis defaults
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.uri", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// MongoDB defaults
	viper.SetDefault("mongodb.enabled", false)
	viper.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongodb.database", "monopolybot")
	viper.SetDefault("mongodb.archive_collection", "archives")

	// JWT defaults
	viper.SetDefault("jwt.secret", "replace-with-secure-secret")
	viper.SetDefault("jwt.expiration", 24)

	// Game defaults
	viper.SetDefault("game.starting_cash", 1500)
	viper.SetDefault("game.go_reward", 200)
	viper.SetDefault("game.min_players", 2)
	viper.SetDefault("game.max_players", 6)
	viper.SetDefault("game.jail_turns", 1)
}

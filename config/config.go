package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Builder  Builder
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Builder holds tunables for the assessment auto-save behaviour.
type Builder struct {
	AutoSaveDelayMs int
	ResponseSaveMs  int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("AUTOSAVE_DELAY_MS", 2000)
	viper.SetDefault("RESPONSE_SAVE_DELAY_MS", 3000)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Builder.AutoSaveDelayMs = viper.GetInt("AUTOSAVE_DELAY_MS")
	config.Builder.ResponseSaveMs = viper.GetInt("RESPONSE_SAVE_DELAY_MS")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}

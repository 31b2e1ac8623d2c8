package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment         string        `mapstructure:"ENVIRONMENT"`
	DatabaseSource      string        `mapstructure:"DATABASE_SOURCE"`
	DatabaseName        string        `mapstructure:"DATABASE_NAME"`
	HTTPServer          string        `mapstructure:"HTTP_SERVER"`
	TokenSymmetricKey   string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	TokenDuration       time.Duration `mapstructure:"TOKEN_DURATION"`
	StripeSecretKey     string        `mapstructure:"STRIPE_SECRET_KEY"`
	UnlockTransactional bool          `mapstructure:"UNLOCK_TRANSACTIONAL"`
}

func LoadConfig(path, name string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(name)
	viper.SetConfigType("json")

	viper.AutomaticEnv()

	var config *Config
	if err := viper.ReadInConfig(); err != nil {
		return config, err
	}

	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	return config, nil
}

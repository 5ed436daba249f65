// Package config reads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/utils"
)

// Config holds settings that may come from the environment. Command-line
// flags are applied on top by the caller.
type Config struct {
	Timezone         string  `env:"MIAOMOTION_TIMEZONE" envDefault:"Local"`
	WeatherTemp      float64 `env:"MIAOMOTION_WEATHER_TEMP" envDefault:"22"`
	WeatherCondition string  `env:"MIAOMOTION_WEATHER_CONDITION" envDefault:"sunny"`
	WeatherWind      string  `env:"MIAOMOTION_WEATHER_WIND" envDefault:"breeze"`
	LocationGranted  bool    `env:"MIAOMOTION_LOCATION_GRANTED" envDefault:"true"`
	AnimationSpeed   float64 `env:"MIAOMOTION_ANIMATION_SPEED" envDefault:"1.0"`
	Notify           bool    `env:"MIAOMOTION_NOTIFY" envDefault:"true"`
	Debug            bool    `env:"MIAOMOTION_DEBUG" envDefault:"false"`
	DBConnection     string  `env:"MIAOMOTION_DB_CONNECTION"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env cannot express as types.
func (c Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	switch models.WeatherCondition(c.WeatherCondition) {
	case models.ConditionSunny, models.ConditionCloudy, models.ConditionOvercast, models.ConditionRainy:
	default:
		return fmt.Errorf("invalid weather condition %q (expected sunny, cloudy, overcast or rainy)", c.WeatherCondition)
	}
	if c.AnimationSpeed < 0 {
		return fmt.Errorf("animation speed must not be negative, got %v", c.AnimationSpeed)
	}
	return nil
}

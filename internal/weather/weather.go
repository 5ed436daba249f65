// Package weather supplies the already-resolved weather input.
package weather

import (
	"context"
	"fmt"

	"github.com/julianstephens/miaomotion/internal/models"
)

// Provider returns the current weather for a location label.
type Provider interface {
	Current(ctx context.Context, location string) (models.WeatherData, error)
}

// StaticProvider reports fixed conditions, typically from configuration.
type StaticProvider struct {
	Temp      float64
	Condition models.WeatherCondition
	Wind      string
}

func (p StaticProvider) Current(ctx context.Context, location string) (models.WeatherData, error) {
	if err := ctx.Err(); err != nil {
		return models.WeatherData{}, err
	}
	cond := p.Condition
	if cond == "" {
		cond = models.ConditionSunny
	}
	return models.WeatherData{
		Temp:      p.Temp,
		Condition: cond,
		Wind:      p.Wind,
		Location:  location,
	}, nil
}

// Icon returns the glyph shown next to the temperature.
func Icon(c models.WeatherCondition) string {
	switch c {
	case models.ConditionSunny:
		return "☀"
	case models.ConditionCloudy:
		return "⛅"
	case models.ConditionOvercast:
		return "☁"
	case models.ConditionRainy:
		return "🌧"
	default:
		return "?"
	}
}

// Summary is the one-line weather header, e.g. "☀ 22°C breeze".
func Summary(w models.WeatherData) string {
	s := fmt.Sprintf("%s %g°C", Icon(w.Condition), w.Temp)
	if w.Wind != "" {
		s += " " + w.Wind
	}
	return s
}

package models

// WeatherCondition drives icon selection only.
type WeatherCondition string

const (
	ConditionSunny    WeatherCondition = "sunny"
	ConditionCloudy   WeatherCondition = "cloudy"
	ConditionOvercast WeatherCondition = "overcast"
	ConditionRainy    WeatherCondition = "rainy"
)

// WeatherData is the already-resolved weather input. Only Temp feeds the
// recommendation engine.
type WeatherData struct {
	Temp      float64          `json:"temp"`
	Condition WeatherCondition `json:"condition"`
	Wind      string           `json:"wind"`
	Location  string           `json:"location"`
}

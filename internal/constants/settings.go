package constants

const (
	// Environment variables read by internal/config
	EnvTimezone         = "MIAOMOTION_TIMEZONE"
	EnvWeatherTemp      = "MIAOMOTION_WEATHER_TEMP"
	EnvWeatherCondition = "MIAOMOTION_WEATHER_CONDITION"
	EnvWeatherWind      = "MIAOMOTION_WEATHER_WIND"
	EnvLocationGranted  = "MIAOMOTION_LOCATION_GRANTED"
	EnvAnimationSpeed   = "MIAOMOTION_ANIMATION_SPEED"
	EnvNotify           = "MIAOMOTION_NOTIFY"
	EnvDebug            = "MIAOMOTION_DEBUG"
	EnvDBConnection     = "MIAOMOTION_DB_CONNECTION"

	DefaultTimezone = "Local" // Use system local timezone by default

	// Location labels produced by the geolocation collaborator
	LocationLabelGranted  = "Gusu District, Suzhou"
	LocationLabelFallback = "Sunshine City"
	LocationLabelPending  = "Locating..."
)

package config

import "github.com/spf13/viper"

type Config struct {
	ServerPort         string  `mapstructure:"SERVER_PORT"`
	RedisAddr          string  `mapstructure:"REDIS_ADDR"`
	RedisPassword      string  `mapstructure:"REDIS_PASSWORD"`
	RoutingBaseURL     string  `mapstructure:"ROUTING_BASE_URL"`
	RoutingAPIKey      string  `mapstructure:"ROUTING_API_KEY"`
	RoutingProfile     string  `mapstructure:"ROUTING_PROFILE"`
	DefaultLat         float64 `mapstructure:"DEFAULT_LAT"`
	DefaultLng         float64 `mapstructure:"DEFAULT_LNG"`
	LocationTimeoutSec int     `mapstructure:"LOCATION_TIMEOUT_SEC"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("ROUTING_BASE_URL", "https://api.openrouteservice.org")
	viper.SetDefault("ROUTING_API_KEY", "")
	viper.SetDefault("ROUTING_PROFILE", "foot-walking")
	// central London, used when the device never reports a position
	viper.SetDefault("DEFAULT_LAT", 51.5074)
	viper.SetDefault("DEFAULT_LNG", -0.1278)
	viper.SetDefault("LOCATION_TIMEOUT_SEC", 10)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

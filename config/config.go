package config

import (
	"log"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
}

// JWTConfig holds the signing contract. It is handed to the token service
// at startup; nothing reads signing material through global state at
// request time.
type JWTConfig struct {
	SecretKey         string `mapstructure:"secret_key"`
	Algorithm         string `mapstructure:"algorithm"`
	AccessTTLMinutes  int    `mapstructure:"access_ttl_minutes"`
	RefreshTTLMinutes int    `mapstructure:"refresh_ttl_minutes"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Server   struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT JWTConfig `mapstructure:"jwt"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	// The signing contract is required in full. Serving requests with an
	// undefined secret, algorithm or TTL is never acceptable, so missing
	// values are fatal here instead of defaulted at runtime.
	jwt := AppConfig.JWT
	if jwt.SecretKey == "" {
		log.Fatal("jwt.secret_key is not defined")
	}
	if jwt.Algorithm == "" {
		log.Fatal("jwt.algorithm is not defined")
	}
	if jwt.AccessTTLMinutes <= 0 {
		log.Fatal("jwt.access_ttl_minutes must be a positive number of minutes")
	}
	if jwt.RefreshTTLMinutes <= 0 {
		log.Fatal("jwt.refresh_ttl_minutes must be a positive number of minutes")
	}
}

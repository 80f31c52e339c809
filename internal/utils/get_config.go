package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort string `yaml:"APP_PORT"`
	AppEnv  string `yaml:"APP_ENV"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Bounds shared by recipe cooking time and ingredient line amounts
	MinAmount int `yaml:"MIN_AMOUNT"`
	MaxAmount int `yaml:"MAX_AMOUNT"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	if config.MinAmount == 0 {
		config.MinAmount = 1
	}
	if config.MaxAmount == 0 {
		config.MaxAmount = 32000
	}

	os.Setenv("JWT_SECRET", config.JWTSecret)
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		if config.AppPort == "" {
			return "8000"
		}
		return config.AppPort
	case "APP_ENV":
		return config.AppEnv
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "MIN_AMOUNT":
		return strconv.Itoa(config.MinAmount)
	case "MAX_AMOUNT":
		return strconv.Itoa(config.MaxAmount)
	default:
		return ""
	}
}

// AmountBounds returns the shared [min, max] range for cooking time and
// ingredient amounts.
func AmountBounds() (int, int) {
	min, max := config.MinAmount, config.MaxAmount
	if min == 0 {
		min = 1
	}
	if max == 0 {
		max = 32000
	}
	return min, max
}

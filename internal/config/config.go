package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI            string
	MongoDatabase       string
	RedisURL            string
	ServerPort          string
	JWTSecret           string
	FirebaseCredentials string
	AppEnv              string
}

// LoadConfig reads settings from the environment, layering in .env when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:            os.Getenv("MONGO_URI"),
		MongoDatabase:       os.Getenv("MONGO_DB"),
		RedisURL:            os.Getenv("REDIS_URL"),
		ServerPort:          os.Getenv("SERVER_PORT"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		AppEnv:              os.Getenv("APP_ENV"),
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "lanka_connect"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = ":8080"
	}
	return cfg, nil
}

package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI     string
	DatabaseName string
	Port         string
	RedisAddr    string
	RabbitURL    string
	OTLPEndpoint string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	dbName := os.Getenv("DATABASE_NAME")
	if dbName == "" {
		dbName = "movie_booking"
	}

	return &Config{
		MongoURI:     os.Getenv("DATABASE_URL"),
		DatabaseName: dbName,
		Port:         port,
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RabbitURL:    os.Getenv("RABBIT_URL"),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}, nil
}

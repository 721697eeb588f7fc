package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	RedisHost  string
	RedisPort  int

	JWTSecret string

	// The refresh token travels in an httpOnly cookie.
	RefreshCookieName string
	CookieDomain      string
	CORSOrigin        string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		dbPort = 5432
	}

	redisPort, err := strconv.Atoi(os.Getenv("REDIS_PORT"))
	if err != nil {
		redisPort = 6379
	}

	return Config{
		Port:              getenv("PORT", "7777"),
		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            dbPort,
		DBUser:            getenv("DB_USER", "postgres"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            getenv("DB_NAME", "taskdeck"),
		RedisHost:         getenv("REDIS_HOST", "localhost"),
		RedisPort:         redisPort,
		JWTSecret:         getenv("JWT_SECRET", "secret"),
		RefreshCookieName: getenv("REFRESH_TOKEN_NAME", "refreshToken"),
		CookieDomain:      os.Getenv("API_DOMAIN"),
		CORSOrigin:        getenv("CORS_ORIGIN", "http://localhost:3000"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	AppPort  string
	AppEnv   string
	BasePath string

	JWTSecret string

	StorageDriver string
	StorageBucket string
	GCSKeyPath    string
	UploadDir     string
	PublicURL     string
}

const defaultBasePath = "/make-server-60c5a920"

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),

		AppPort:  os.Getenv("APP_PORT"),
		AppEnv:   os.Getenv("APP_ENV"),
		BasePath: os.Getenv("APP_BASE_PATH"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		StorageDriver: os.Getenv("STORAGE_DRIVER"),
		StorageBucket: os.Getenv("STORAGE_BUCKET"),
		GCSKeyPath:    os.Getenv("GCS_KEY_PATH"),
		UploadDir:     os.Getenv("UPLOAD_DIR"),
		PublicURL:     os.Getenv("PUBLIC_URL"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.BasePath == "" {
		cfg.BasePath = defaultBasePath
	}
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = "local"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}

	return cfg
}

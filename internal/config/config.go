package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the API reads from the environment.
type Config struct {
	Env           string
	Port          string
	MongoURI      string
	MongoDatabase string

	JWTSecret     string
	JWTExpireDays int

	AdminUsername string
	AdminPassword string
	AdminEmail    string

	FrontendURL    string
	TextbeltAPIKey string

	// derived
	JWTExpiry time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "5000")
	v.SetDefault("MONGO_DATABASE", "cardiology")
	v.SetDefault("JWT_EXPIRE_DAYS", 7)
	v.SetDefault("ADMIN_USERNAME", "pmi")
	v.SetDefault("ADMIN_PASSWORD", "123")
	v.SetDefault("ADMIN_EMAIL", "admin@cardiologyhospital.com")

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		MongoURI:       v.GetString("MONGODB_URI"),
		MongoDatabase:  v.GetString("MONGO_DATABASE"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTExpireDays:  v.GetInt("JWT_EXPIRE_DAYS"),
		AdminUsername:  v.GetString("ADMIN_USERNAME"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		AdminEmail:     v.GetString("ADMIN_EMAIL"),
		FrontendURL:    v.GetString("FRONTEND_URL"),
		TextbeltAPIKey: v.GetString("TEXTBELT_API_KEY"),
	}
	if cfg.JWTExpireDays <= 0 {
		cfg.JWTExpireDays = 7
	}
	cfg.JWTExpiry = time.Duration(cfg.JWTExpireDays) * 24 * time.Hour
	return cfg
}

// IsDevelopment reports whether error detail may be echoed in responses.
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Config struct {
	PostgresURI       string
	RedisURI          string
	AppEnv            string
	CronSecret        string
	AdminPassword     string
	SecretKey         string
	CookieName        string
	GraphAPIBaseURL   string
	PlannerWindowDays int
	R2                R2
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI:       getEnv("POSTGRES_URI", ""),
		RedisURI:          getEnv("REDIS_URI", ""),
		AppEnv:            getEnv("APP_ENV", "development"),
		CronSecret:        getEnv("CRON_SECRET", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		SecretKey:         getEnv("SECRET_KEY", ""),
		CookieName:        getEnv("COOKIE_NAME", "labs_session"),
		GraphAPIBaseURL:   getEnv("GRAPH_API_BASE_URL", "https://graph.facebook.com/v21.0"),
		PlannerWindowDays: 30,
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

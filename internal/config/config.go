package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port         int
	APIBaseURL   string
	APIKey       string
	AgentName    string
	BusinessName string
	DatabaseURL  string
	NatsURL      string
	NatsToken    string
	LogLevel     string
}

func Load() Config {
	return Config{
		Port:         envInt("WIDGETD_PORT", 8760),
		APIBaseURL:   envStr("ROKOVO_API_URL", "https://api.rokovo.io"),
		APIKey:       envStr("ROKOVO_API_KEY", ""),
		AgentName:    envStr("WIDGET_AGENT_NAME", "AI Assistant"),
		BusinessName: envStr("WIDGET_BUSINESS_NAME", "Your Business"),
		DatabaseURL:  envStr("DATABASE_URL", ""),
		NatsURL:      envStr("NATS_URL", ""),
		NatsToken:    envStr("NATS_TOKEN", ""),
		LogLevel:     envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

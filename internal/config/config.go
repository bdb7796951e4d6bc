package config

import (
	"os"
	"strings"
)

type Config struct {
	Env           string
	Port          string
	Origin        string // CORS
	SessionSecret string

	// Seed admin, created at startup when no users exist yet.
	AdminLogin    string
	AdminPassword string
	AdminName     string

	// Initial application catalog; admins can append more at runtime.
	Applications []string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	apps := strings.Split(env("APPLICATIONS", "E-Arbitrage,E-Competitions,E-Licences,Messagerie,Portail Clubs"), ",")
	for i := range apps {
		apps[i] = strings.TrimSpace(apps[i])
	}
	return Config{
		Env:           env("APP_ENV", "dev"),
		Port:          env("API_PORT", "8080"),
		Origin:        env("CORS_ORIGIN", "http://localhost:3000"),
		SessionSecret: env("SESSION_SECRET", "dev-only-secret"),
		AdminLogin:    env("ADMIN_LOGIN", "admin"),
		AdminPassword: env("ADMIN_PASSWORD", "admin123"),
		AdminName:     env("ADMIN_NAME", "Administrateur E-LIGUE"),
		Applications:  apps,
	}
}

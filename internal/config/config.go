package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DBConfig agrupa os parâmetros de conexão com o Postgres
type DBConfig struct {
	Host     string
	Port     uint
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig configura o cache das configurações do sistema.
// Addr vazio desliga o cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// AuthConfig configura os tokens de acesso e o cookie de refresh.
// AdminEmail e AdminSenha criam o primeiro administrador quando não há usuários.
type AuthConfig struct {
	JWTSecret    string
	Issuer       string
	CookieSecure bool
	AdminEmail   string
	AdminSenha   string
}

// Config contém toda a configuração da API
type Config struct {
	Port        string
	DB          DBConfig
	Redis       RedisConfig
	Auth        AuthConfig
	CORSOrigins []string
	LogLevel    string
	WebhookURL  string
}

// Load lê as variáveis de ambiente (e o .env, se existir)
func Load() *Config {
	// .env é opcional
	_ = godotenv.Load()

	return &Config{
		Port: getenv("APP_PORT", "8080"),
		DB: DBConfig{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     uint(getenvInt("DB_PORT", 5432)),
			User:     getenv("DB_USERNAME", "postgres"),
			Password: getenv("DB_PASSWORD", "postgres"),
			Name:     getenv("DB_NAME", "bolzoni"),
			SSLMode:  getenv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", ""),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getenvInt("REDIS_DB", 0),
			TTL:      time.Duration(getenvInt("REDIS_TTL_SECONDS", 300)) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:    getenv("JWT_SECRET", ""),
			Issuer:       getenv("JWT_ISSUER", "bolzoni-api"),
			CookieSecure: getenv("COOKIE_SECURE", "false") == "true",
			AdminEmail:   getenv("ADMIN_EMAIL", ""),
			AdminSenha:   getenv("ADMIN_PASSWORD", ""),
		},
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		WebhookURL:  getenv("WEBHOOK_URL", ""),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

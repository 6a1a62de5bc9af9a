// Package config carrega a configuração da aplicação.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config guarda a configuração global da aplicação.
// É lida uma única vez das variáveis de ambiente na inicialização
// e tratada como imutável a partir daí.
type Config struct {
	// Banco de dados
	MongoURI     string
	DatabaseName string

	// Sessão
	SessionMaxAge time.Duration

	// Senhas
	BcryptCost int

	// Servidor
	ServerPort string

	// Cookie
	CookieSecure bool
	CookieDomain string

	// CORS
	CORSAllowedOrigin string

	// Worker de limpeza de comentários órfãos
	LimpezaInterval time.Duration
}

// Load lê a Config das variáveis de ambiente.
// Retorna erro quando uma variável obrigatória não está definida.
func Load() (*Config, error) {
	cfg := &Config{}

	// Obrigatórias
	var faltando []string

	cfg.MongoURI = os.Getenv("MONGODB_URI")
	if cfg.MongoURI == "" {
		faltando = append(faltando, "MONGODB_URI")
	}

	if len(faltando) > 0 {
		return nil, fmt.Errorf("variáveis de ambiente obrigatórias não definidas: %v", faltando)
	}

	// Opcionais com valores padrão
	cfg.DatabaseName = getEnvString("DATABASE_NAME", "blog")
	cfg.SessionMaxAge = getEnvDuration("SESSION_MAX_AGE", 24*time.Hour)
	cfg.BcryptCost = getEnvInt("BCRYPT_COST", 10)
	cfg.ServerPort = getEnvString("SERVER_PORT", "3000")
	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", false)
	cfg.CookieDomain = getEnvString("COOKIE_DOMAIN", "")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	cfg.LimpezaInterval = getEnvDuration("LIMPEZA_INTERVAL", 1*time.Hour)

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

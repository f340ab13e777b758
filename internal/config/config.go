package config

import (
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DBDSN    string
	HTTPAddr string
	LogLevel string
	RedisDSN string

	CORSOrigins []string
	Timezone    string

	// arquivo de relatórios no R2 (opcional)
	R2Endpoint string
	R2Bucket   string
	R2KeysRaw  string // json {"access_key_id","secret_access_key","public_url"}; nunca logar

	// intervalo do worker de avisos
	AlertInterval time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		DBDSN:      os.Getenv("DB_DSN"),
		HTTPAddr:   getenvDefault("HTTP_ADDR", ":8080"),
		LogLevel:   getenvDefault("LOG_LEVEL", "info"),
		RedisDSN:   os.Getenv("REDIS_DSN"),
		Timezone:   getenvDefault("TIMEZONE", "America/Sao_Paulo"),
		R2Endpoint: os.Getenv("R2_ENDPOINT"),
		R2Bucket:   os.Getenv("R2_BUCKET"),
		R2KeysRaw:  os.Getenv("R2_KEYS"),
	}

	if cfg.DBDSN == "" {
		return Config{}, errors.New("missing DB_DSN")
	}

	if cfg.R2KeysRaw != "" {
		var tmp any
		if err := json.Unmarshal([]byte(cfg.R2KeysRaw), &tmp); err != nil {
			return Config{}, errors.New("R2_KEYS must be valid json")
		}
	}

	corsOrigins := getenvDefault("CORS_ORIGINS", "")
	if corsOrigins != "" {
		cfg.CORSOrigins = strings.Split(corsOrigins, ",")
		for i := range cfg.CORSOrigins {
			cfg.CORSOrigins[i] = strings.TrimSpace(cfg.CORSOrigins[i])
		}
	} else {
		cfg.CORSOrigins = []string{"http://localhost:3000"} // default
	}

	minutes := 10
	if v := os.Getenv("ALERT_INTERVAL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, errors.New("ALERT_INTERVAL must be a positive integer (minutes)")
		}
		minutes = n
	}
	cfg.AlertInterval = time.Duration(minutes) * time.Minute

	return cfg, nil
}

// Location resolve o fuso configurado; cai para UTC se inválido.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

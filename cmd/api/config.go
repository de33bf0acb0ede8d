package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"thothexport/internal/source"
)

type config struct {
	Addr           string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	EnableHSTS     bool
	Source         source.Config
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func loadConfig() (config, error) {
	src, err := source.ConfigFromEnv()
	if err != nil {
		return config{}, err
	}

	cfg := config{
		Addr:        getEnv("APP_ADDR", ":8080"),
		CORSOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		EnableHSTS:  os.Getenv("ENABLE_HSTS") == "true",
		Source:      src,
	}

	rps := getEnv("RATE_LIMIT_RPS", "10")
	if cfg.RateLimitRPS, err = strconv.ParseFloat(rps, 64); err != nil {
		return config{}, fmt.Errorf("RATE_LIMIT_RPS must be a number: %w", err)
	}
	burst := getEnv("RATE_LIMIT_BURST", "20")
	if cfg.RateLimitBurst, err = strconv.Atoi(burst); err != nil {
		return config{}, fmt.Errorf("RATE_LIMIT_BURST must be an integer: %w", err)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

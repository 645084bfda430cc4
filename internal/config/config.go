// Package config loads server and CLI settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"Spraytower/internal/calc/props"
	"Spraytower/internal/calc/units"

	"github.com/joho/godotenv"
)

var ErrNoTokenKey = errors.New("TOKEN_KEY environment variable is not set")

type Config struct {
	Addr          string
	TLSCert       string
	TLSKey        string
	TokenKey      []byte
	DatabaseURL   string
	LogLevel      slog.Level
	UnitSystem    units.System
	Framework     props.Framework
	MaxIterations int
}

// Load reads .env files (any of them may be missing) and then the process
// environment. Values already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	c := Config{
		Addr:          getenv("ADDR", ":8443"),
		TLSCert:       os.Getenv("TLS_CERT"),
		TLSKey:        os.Getenv("TLS_KEY"),
		TokenKey:      []byte(os.Getenv("TOKEN_KEY")),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MaxIterations: 20,
	}

	if err := c.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	sys, err := units.ParseSystem(strings.ToLower(os.Getenv("UNIT_SYSTEM")))
	if err != nil {
		return Config{}, fmt.Errorf("UNIT_SYSTEM: %w", err)
	}
	c.UnitSystem = sys
	fw, err := props.ParseFramework(strings.ToUpper(getenv("FRAMEWORK", string(props.FrameworkEU))))
	if err != nil {
		return Config{}, fmt.Errorf("FRAMEWORK: %w", err)
	}
	c.Framework = fw
	if v := os.Getenv("MAX_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_ITERATIONS: invalid value %q", v)
		}
		c.MaxIterations = n
	}
	return c, nil
}

// RequireServer checks the settings only the HTTP server needs.
func (c Config) RequireServer() error {
	if len(c.TokenKey) == 0 {
		return ErrNoTokenKey
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

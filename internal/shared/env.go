package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override values from config.toml.
const (
	EnvUIN    = "QQMUSIC_UIN"
	EnvCookie = "QQMUSIC_COOKIE"
	EnvHelper = "QQMUSIC_HELPER"
	EnvDB     = "QQMUSIC_DB"
)

// LoadEnv loads variables from the given .env files (default ".env") into the process environment.
//
// Missing files are not an error; variables already set in the environment win.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides config values with any QQMUSIC_* variables present in the environment.
//
// QQMUSIC_HELPER is split on whitespace into the helper command and its arguments.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvUIN); v != "" {
		c.Credentials.QQ.UIN = v
	}
	if v := os.Getenv(EnvCookie); v != "" {
		c.Credentials.QQ.Cookie = v
	}
	if fields := strings.Fields(os.Getenv(EnvHelper)); len(fields) > 0 {
		c.Helper.Command = fields[0]
		c.Helper.Args = fields[1:]
	}
	if v := os.Getenv(EnvDB); v != "" {
		c.Database.Path = v
	}
}

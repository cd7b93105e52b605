package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by [Load] when no files are given.
const DefaultEnvFile = ".env"

// FromEnv applies PARTSLOGIC_* entries of environ, in KEY=value form,
// over [Default]. Prefixed names that map to no known property are
// ignored.
func FromEnv(environ []string) (Config, error) {
	cfg := Default()

	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}

		property := PropertyFromEnvName(name)
		if property == "" {
			continue
		}

		if err := cfg.Set(property, value); err != nil {
			if errors.Is(err, ErrUnknownProperty) {
				continue
			}
			return Config{}, fmt.Errorf("env[%s]: %w", name, err)
		}
	}

	return cfg, nil
}

// Load reads the given .env files into the process environment, then
// builds a Config from it.
func Load(files ...string) (Config, error) {
	if err := LoadEnvFiles(files...); err != nil {
		return Config{}, err
	}

	return FromEnv(os.Environ())
}

// LoadEnvFiles exports the variables of the given .env files, or of
// [DefaultEnvFile] when none are given. Missing files are skipped and
// variables already exported win over file values.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}

	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("loading env file[%s]: %w", file, err)
		}
	}

	return nil
}

// ReadFile parses a .env file without touching the process environment.
func ReadFile(file string) (Config, error) {
	vars, err := godotenv.Read(file)
	if err != nil {
		return Config{}, fmt.Errorf("reading env file[%s]: %w", file, err)
	}

	environ := make([]string, 0, len(vars))
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}

	return FromEnv(environ)
}

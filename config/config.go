// Package config holds the settings used to reach the PartsLogic API.
//
// Values come from PARTSLOGIC_* environment variables. The prefix is
// removed and the rest is lower camel cased to find the property, so
// PARTSLOGIC_API_KEY sets apiKey.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/adamwoolhether/partslogic/client"
)

// EnvPrefix marks environment variables read by [FromEnv].
const EnvPrefix = "PARTSLOGIC"

// DefaultTimeout bounds every API call unless configured otherwise.
const DefaultTimeout = 30 * time.Second

// Property names.
const (
	APIKey           = "apiKey"
	APIEndpoint      = "apiEndpoint"
	EnableDebug      = "enableDebug"
	Timeout          = "timeout"
	UseMockResponses = "useMockResponses"
)

var properties = []string{APIKey, APIEndpoint, EnableDebug, Timeout, UseMockResponses}

var (
	// ErrUnknownProperty is returned for a property name outside [Properties].
	ErrUnknownProperty = errors.New("unknown property")
	// ErrNotSet is returned by [Config.Get] for an empty string property.
	ErrNotSet = errors.New("property not set")
)

// Config is the client configuration.
type Config struct {
	APIKey           string        `json:"apiKey" validate:"required"`
	APIEndpoint      string        `json:"apiEndpoint" validate:"required,url"`
	EnableDebug      bool          `json:"enableDebug"`
	Timeout          time.Duration `json:"timeout" validate:"gte=0"`
	UseMockResponses bool          `json:"useMockResponses"`
}

// Default returns a Config pointing at the production API.
func Default() Config {
	return Config{
		APIEndpoint: client.DefaultEndpoint,
		Timeout:     DefaultTimeout,
	}
}

// Properties lists the recognized property names.
func Properties() []string {
	return slices.Clone(properties)
}

// Set parses value into the named property.
func (c *Config) Set(name, value string) error {
	switch name {
	case APIKey:
		c.APIKey = value
	case APIEndpoint:
		c.APIEndpoint = value
	case EnableDebug:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("property[%s] must be boolean: %w", name, err)
		}
		c.EnableDebug = b
	case UseMockResponses:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("property[%s] must be boolean: %w", name, err)
		}
		c.UseMockResponses = b
	case Timeout:
		d, err := parseDuration(value)
		if err != nil {
			return fmt.Errorf("property[%s] must be a duration: %w", name, err)
		}
		c.Timeout = d
	default:
		return fmt.Errorf("property[%s]: %w", name, ErrUnknownProperty)
	}

	return nil
}

// Get returns the named property formatted as a string.
func (c Config) Get(name string) (string, error) {
	var value string
	switch name {
	case APIKey:
		value = c.APIKey
	case APIEndpoint:
		value = c.APIEndpoint
	case EnableDebug:
		return strconv.FormatBool(c.EnableDebug), nil
	case UseMockResponses:
		return strconv.FormatBool(c.UseMockResponses), nil
	case Timeout:
		return c.Timeout.String(), nil
	default:
		return "", fmt.Errorf("property[%s]: %w", name, ErrUnknownProperty)
	}

	if value == "" {
		return "", fmt.Errorf("property[%s]: %w", name, ErrNotSet)
	}

	return value, nil
}

// Validate checks the config against its declared tags.
func (c Config) Validate() error {
	return validateStruct(c)
}

// ClientOptions translates the config into options for [client.Build].
func (c Config) ClientOptions() []client.Option {
	opts := []client.Option{
		client.WithAPIKey(c.APIKey),
		client.WithEndpoint(c.APIEndpoint),
		client.WithTimeout(c.Timeout),
	}
	if c.EnableDebug {
		opts = append(opts, client.WithDebug())
	}

	return opts
}

// PropertyFromEnvName maps PARTSLOGIC_TEST_PROPERTY_NAME to
// testPropertyName. It returns "" when name lacks the prefix or
// nothing follows it.
func PropertyFromEnvName(name string) string {
	rest, ok := strings.CutPrefix(name, EnvPrefix+"_")
	if !ok {
		return ""
	}

	parts := strings.Split(strings.ToLower(rest), "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}

	return strings.Join(parts, "")
}

// EnvName is the inverse of [PropertyFromEnvName].
func EnvName(property string) string {
	var b strings.Builder
	b.WriteString(EnvPrefix)
	b.WriteByte('_')
	for i, r := range property {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}

	return strings.ToUpper(b.String())
}

// parseDuration accepts Go durations and bare integers as seconds.
func parseDuration(value string) (time.Duration, error) {
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	return time.ParseDuration(value)
}

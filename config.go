package htmlview

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultErrorMessage is shown when a view has no data to render
	DefaultErrorMessage = "We could not find what you were looking for. Please try again!"

	// DefaultMessage is the informational message of RenderMessage
	DefaultMessage = "Start by searching for something. Have fun!"

	// DefaultIconsURL is the sprite sheet referenced by the status templates
	DefaultIconsURL = "/img/icons.svg"
)

// ErrInvalidConfig is returned by Validate for a config that fails validation
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the view settings shared by every concrete view
type Config struct {
	// ErrorMessage is the fallback for views whose generator has no messages
	ErrorMessage string `yaml:"error_message" validate:"required"`

	// Message is the fallback informational message
	Message string `yaml:"message" validate:"required"`

	// IconsURL is the href of the SVG sprite sheet
	IconsURL string `yaml:"icons_url" validate:"required"`

	// Minify runs generated markup through the HTML minifier
	Minify bool `yaml:"minify"`

	LogLevel  string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"omitempty,oneof=json console"`
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		ErrorMessage: DefaultErrorMessage,
		Message:      DefaultMessage,
		IconsURL:     DefaultIconsURL,
		LogLevel:     "info",
		LogFormat:    "json",
	}
}

// LoadConfig reads a YAML config file. Missing fields keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the config fields
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs Validate and then field-level checks of the endpoint,
// orientation, and config file. Field failures are returned as
// criterio.FieldErrors.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("api.endpoint", c.API.Endpoint, isHTTPURL),
		criterio.Run("api.orientation", c.API.Orientation, isOrientation),
		criterio.Run("api.query", c.API.Query, notBlank),
		c.validateLayout(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.API.APIKey == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "API",
			Item:     "api.api_key",
			Message:  "no api key configured; set PEXELS_API_KEY or use --demo",
		})
	}

	if c.Layout.ItemSpacing == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Layout",
			Item:     "layout.item_spacing",
			Message:  "thumbnails will render without a gap",
		})
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateLayout() error {
	var errs criterio.FieldErrorsBuilder
	if c.Layout.ItemSpacing > c.Layout.ItemSize {
		errs = errs.Append("layout.item_spacing", fmt.Errorf("spacing %d exceeds item size %d", c.Layout.ItemSpacing, c.Layout.ItemSize))
	}
	return errs.ToError()
}

func isHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url has no host")
	}
	return nil
}

func isOrientation(v string) error {
	switch v {
	case "portrait", "landscape", "square":
		return nil
	default:
		return fmt.Errorf("must be one of portrait, landscape, square")
	}
}

func notBlank(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}

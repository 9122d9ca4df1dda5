package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"bitbucket.org/mmdatafocus/stock_planner/utils"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Settings is the process configuration read from the environment (and .env).
type Settings struct {
	Port               string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	GoEnv              string `envconfig:"GO_ENV" default:"development"`
	LogLevel           string `envconfig:"LOG_LEVEL" default:"info"`
	CorsAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS"`

	RateLimitEnabled       bool   `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	RateLimitMaxRequests   int64  `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"600" validate:"gt=0"`
	RateLimitWindowSeconds int64  `envconfig:"RATE_LIMIT_WINDOW_SECONDS" default:"60" validate:"gt=0"`
	RedisAddress           string `envconfig:"REDIS_ADDRESS" default:"localhost:6379"`

	MaxUploadBytes   int64  `envconfig:"MAX_UPLOAD_BYTES" default:"5242880" validate:"gt=0"`
	TemplateFilename string `envconfig:"TEMPLATE_FILENAME" default:"inventory_template.xlsx" validate:"required,endswith=.xlsx"`

	SheetLayout     string `envconfig:"SHEET_LAYOUT" default:"ko" validate:"oneof=ko en"`
	CatalogPreset   string `envconfig:"CATALOG_PRESET" default:"sku" validate:"oneof=basic sku"`
	CatalogProducts string `envconfig:"CATALOG_PRODUCTS"`
	CatalogWeeks    string `envconfig:"CATALOG_WEEKS"`
	CatalogFile     string `envconfig:"CATALOG_FILE"`
}

func (s *Settings) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(s.GoEnv), "production")
}

func (s *Settings) AllowedOrigins() []string {
	return utils.SplitAndTrim(s.CorsAllowedOrigins)
}

// LoadSettings loads .env if present, then decodes and validates the
// environment.
func LoadSettings() (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logg.WithFields(logrus.Fields{"field": ".env"}).Warn("error loading .env file (continuing): " + err.Error())
	}

	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment: %w", err)
	}
	if err := utils.ValidateStruct(&s); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", utils.ProcessValidationErrors(err))
	}
	SetLogLevel(s.LogLevel)
	return &s, nil
}

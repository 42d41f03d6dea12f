// Package config loads the client configuration from YAML with struct-tag
// defaults and environment overrides for secrets.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config is the complete configuration for the service layer.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Storage StorageConfig `yaml:"storage"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig identifies the hosted backend project and the collections
// this layer talks to.
type BackendConfig struct {
	Endpoint   string `yaml:"endpoint" default:"https://cloud.quillapi.dev/v1"`
	Project    string `yaml:"project" default:""`
	Database   string `yaml:"database" default:"blog"`
	Collection string `yaml:"collection" default:"posts"`
	Bucket     string `yaml:"bucket" default:"featured-images"`
}

// StorageConfig selects where featured images live. "bucket" uses the hosted
// backend's file bucket; "s3" uses an S3-compatible endpoint directly.
type StorageConfig struct {
	Driver string   `yaml:"driver" default:"bucket"`
	S3     S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint string `yaml:"endpoint" default:""`
	Bucket   string `yaml:"bucket" default:""`

	// Credentials come from the environment, never from the YAML file.
	AccessKeyID     string `yaml:"-"`
	SecretAccessKey string `yaml:"-"`
}

type RenderConfig struct {
	SyntaxTheme string `yaml:"syntax_theme" default:"gruvbox"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

var AppConfig *Config

func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	// Try to read and parse the config file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		applyEnvOverrides(config)
		AppConfig = config
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(config)
	AppConfig = config
	return nil
}

// applyEnvOverrides pulls project and storage secrets from the environment so
// they never have to live in the config file.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("QUILL_ENDPOINT"); v != "" {
		config.Backend.Endpoint = v
	}
	if v := os.Getenv("QUILL_PROJECT"); v != "" {
		config.Backend.Project = v
	}
	config.Storage.S3.AccessKeyID = os.Getenv("QUILL_S3_ACCESS_KEY_ID")
	config.Storage.S3.SecretAccessKey = os.Getenv("QUILL_S3_SECRET_ACCESS_KEY")
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}

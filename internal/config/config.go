// Package config loads the contactform YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/jsonplaceholder"
	"github.com/goliatone/go-contactform/pkg/render"
)

const (
	DefaultAddr     = ":8080"
	DefaultLogLevel = "info"
	maxPostsLimit   = 100
)

// Config is the top level configuration document.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Form   FormConfig   `yaml:"form"`
	Server ServerConfig `yaml:"server"`
	Page   PageConfig   `yaml:"page"`
	Log    LogConfig    `yaml:"log"`
}

type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	PostsLimit int           `yaml:"posts_limit"`
}

type FormConfig struct {
	BannerDelay   time.Duration `yaml:"banner_delay"`
	DefaultUserID int           `yaml:"default_user_id"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr"`
	BasePath string `yaml:"base_path"`
}

type PageConfig struct {
	Title        string `yaml:"title"`
	ThemeVariant string `yaml:"theme_variant"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:    jsonplaceholder.DefaultBaseURL,
			Timeout:    jsonplaceholder.DefaultTimeout,
			UserAgent:  jsonplaceholder.DefaultUserAgent,
			PostsLimit: contact.DefaultPostsLimit,
		},
		Form: FormConfig{
			BannerDelay:   contact.DefaultBannerDelay,
			DefaultUserID: contact.DefaultUserID,
		},
		Server: ServerConfig{Addr: DefaultAddr},
		Page:   PageConfig{Title: render.DefaultTitle},
		Log:    LogConfig{Level: DefaultLogLevel},
	}
}

// Load reads path and applies it over Default. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over Default and normalises the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg.Normalize(), nil
}

// Normalize fills empty values with defaults and clamps out of range ones.
func (c Config) Normalize() Config {
	defaults := Default()

	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if strings.TrimSpace(c.API.UserAgent) == "" {
		c.API.UserAgent = defaults.API.UserAgent
	}
	if c.API.PostsLimit <= 0 {
		c.API.PostsLimit = defaults.API.PostsLimit
	}
	if c.API.PostsLimit > maxPostsLimit {
		c.API.PostsLimit = maxPostsLimit
	}

	if c.Form.BannerDelay <= 0 {
		c.Form.BannerDelay = defaults.Form.BannerDelay
	}
	if c.Form.DefaultUserID <= 0 {
		c.Form.DefaultUserID = defaults.Form.DefaultUserID
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	c.Server.BasePath = strings.TrimSpace(c.Server.BasePath)

	if strings.TrimSpace(c.Page.Title) == "" {
		c.Page.Title = defaults.Page.Title
	}
	c.Page.ThemeVariant = strings.TrimSpace(c.Page.ThemeVariant)

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	return c
}

// ClientOptions maps the API section onto REST client options.
func (c Config) ClientOptions() []jsonplaceholder.Option {
	return []jsonplaceholder.Option{
		jsonplaceholder.WithBaseURL(c.API.BaseURL),
		jsonplaceholder.WithTimeout(c.API.Timeout),
		jsonplaceholder.WithUserAgent(c.API.UserAgent),
	}
}

// ControllerOptions maps the API and form sections onto controller options.
func (c Config) ControllerOptions() []contact.Option {
	return []contact.Option{
		contact.WithPostsLimit(c.API.PostsLimit),
		contact.WithBannerDelay(c.Form.BannerDelay),
		contact.WithDefaultUserID(c.Form.DefaultUserID),
	}
}

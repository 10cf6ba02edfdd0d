package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var GistsGoneVersion = "1.0.0"

var C *config

// Not using nested structs because the library
// doesn't support dot notation in this case sadly
type config struct {
	LogLevel string `yaml:"log-level"`

	GithubAPIURL   string `yaml:"github.api-url"`
	GithubTokenEnv string `yaml:"github.token-env"`
	GithubTimeout  int    `yaml:"github.timeout"`
	GithubPerPage  int    `yaml:"github.per-page"`
	GithubMaxPages int    `yaml:"github.max-pages"`
	GithubRps      int    `yaml:"github.rps"`
}

func configWithDefaults() *config {
	c := &config{}

	c.LogLevel = "warn"

	c.GithubAPIURL = "https://api.github.com"
	c.GithubTokenEnv = "GITHUB_API_TOKEN"
	c.GithubTimeout = 15
	c.GithubPerPage = 100
	c.GithubMaxPages = 30
	c.GithubRps = 1

	return c
}

func InitConfig(configPath string) error {
	// Default values
	c := configWithDefaults()

	if configPath != "" {
		file, err := os.Open(configPath)
		if err != nil {
			return fmt.Errorf("cannot open config file %s: %w", configPath, err)
		}
		defer file.Close()

		// Override default values with values from the config file
		d := yaml.NewDecoder(file)
		if err = d.Decode(&c); err != nil {
			return err
		}
	}

	// Override default values with environment variables (as yaml)
	configEnv := os.Getenv("CONFIG")
	if configEnv != "" {
		d := yaml.NewDecoder(strings.NewReader(configEnv))
		if err := d.Decode(&c); err != nil {
			return err
		}
	}

	C = c

	return nil
}

func InitLog() {
	level, err := zerolog.ParseLevel(C.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	writer := zerolog.NewConsoleWriter()
	writer.Out = os.Stderr

	log.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

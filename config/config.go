package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Source describes one harvested news source in the pipeline layout. The
// RSS URL is carried for the harvesting stages and never fetched here.
type Source struct {
	Name      string `toml:"name"`
	Canonical string `toml:"canonical,omitempty"`
	Master    string `toml:"master"`
	RSS       string `toml:"rss,omitempty"`
}

// Config is the top-level pipeline configuration.
type Config struct {
	Master  string   `toml:"master"`
	Sources []Source `toml:"sources"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Master == "" {
		return errors.New("config: unified master path is required")
	}
	seen := make(map[string]struct{}, len(c.Sources))
	for _, source := range c.Sources {
		if source.Name == "" {
			return errors.New("config: source name is required")
		}
		if _, ok := seen[source.Name]; ok {
			return fmt.Errorf("config: duplicate source %q", source.Name)
		}
		seen[source.Name] = struct{}{}
		if source.Master == "" {
			return fmt.Errorf("config: source %q has no master path", source.Name)
		}
	}
	return nil
}

// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ik5/oggflac/demux"
)

var ErrInvalid = errors.New("invalid config")

// Config holds the settings shared by all subcommands. Command line flags
// override whatever the file sets.
type Config struct {
	LogLevel string `yaml:"log_level"`

	// ChunkSize is the minimum read size handed to the transport.
	ChunkSize int `yaml:"chunk_size"`

	// NoChain stops decoding after the first link.
	NoChain bool `yaml:"no_chain"`

	// BitDepth of decoded WAV output.
	BitDepth int `yaml:"bit_depth"`

	// IndexDir, when set, is where info stores link indexes by default.
	IndexDir string `yaml:"index_dir"`
}

func Default() *Config {
	return &Config{
		LogLevel:  "warn",
		ChunkSize: demux.DefaultChunkSize,
		BitDepth:  16,
	}
}

// Load reads a YAML config file, expands environment variables, and
// unmarshals it on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot read config file %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ChunkSize < 0 {
		return fmt.Errorf("%w: chunk_size must not be negative, got %d", ErrInvalid, c.ChunkSize)
	}

	switch c.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: bit_depth must be 8, 16, 24 or 32, got %d", ErrInvalid, c.BitDepth)
	}
	return nil
}

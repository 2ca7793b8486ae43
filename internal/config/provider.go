// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions defines explicit configuration loading inputs.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath string
		// ConfigDirPath overrides the config directory lookup when set.
		ConfigDirPath string
	}

	// Loaded is a configuration together with the file it came from.
	Loaded struct {
		*Config
		// Path is the file read, or "" when only defaults and environment
		// overrides apply.
		Path string
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Loaded, error)
	}

	fileProvider struct{}

	// StaticProvider returns a fixed configuration. It is used by tests and
	// by the embedded shell, which reuses the configuration of its host.
	StaticProvider struct {
		Config *Config
	}
)

// NewProvider creates a configuration provider backed by the CUE file and
// RSCTL_* environment variables.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Loaded, error) {
	cfg, path, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Loaded{Config: cfg, Path: path}, nil
}

// Load returns the static configuration, or the defaults when nil.
func (p StaticProvider) Load(context.Context, LoadOptions) (*Loaded, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Loaded{Config: cfg}, nil
}

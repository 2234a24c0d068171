package config

import (
	"os"

	"github.com/transferia/tweetstream/internal/logger"
	"github.com/transferia/tweetstream/pkg/runtime/local"
	"go.ytsaurus.tech/library/go/core/xerrors"
	"gopkg.in/yaml.v3"
)

// Config is the content of the agent yaml file: one pipeline plus process level settings.
type Config struct {
	local.Pipeline `yaml:",inline"`
	OtelLog        logger.OtelLogConfig `yaml:"otel_log"`
}

// FromYaml reads path and expands ${VAR} references from the environment before parsing.
func FromYaml(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("unable to read %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, xerrors.Errorf("unable to parse yaml: %w", err)
	}
	cfg.Pipeline.WithDefaults()
	if err := cfg.Pipeline.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid pipeline: %w", err)
	}
	cfg.OtelLog.WithDefaults()
	if err := cfg.OtelLog.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid otel_log: %w", err)
	}
	return &cfg, nil
}

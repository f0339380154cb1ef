package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	mobilemoney "github.com/goliatone/go-mobile-money"
	"github.com/goliatone/go-mobile-money/core"
)

const envConfigPath = "OMCTL_CONFIG"

// loadRawConfig reads the YAML file at path. An empty path falls back to
// OMCTL_CONFIG and then to no file at all.
func loadRawConfig(path string) (map[string]any, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(envConfigPath))
	}
	if path == "" {
		return map[string]any{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("omctl: read config %s: %w", path, err)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("omctl: parse config %s: %w", path, err)
	}
	return raw, nil
}

func (a *app) service() (*mobilemoney.Service, error) {
	raw, err := loadRawConfig(a.configPath)
	if err != nil {
		return nil, err
	}
	runtime := mobilemoney.Config{}
	if env := strings.TrimSpace(a.environment); env != "" {
		runtime.Environment = mobilemoney.Environment(strings.ToLower(env))
	}
	opts := []mobilemoney.Option{
		mobilemoney.WithConfigProvider(core.NewCfgxConfigProvider(core.StaticRawConfigLoader{Values: raw})),
	}
	opts = append(opts, a.options...)
	return mobilemoney.New(runtime, opts...)
}

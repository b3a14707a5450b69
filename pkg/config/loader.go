package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/raywall/todo-quick-service/envloader"
)

// Load lê o YAML, aplica overrides de ambiente e valida o resultado.
func Load(path string) (*ServiceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: falha ao ler %s: %w", path, err)
	}

	var cfg ServiceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: yaml inválido em %s: %w", path, err)
	}

	if err := envloader.Load(&cfg); err != nil {
		return nil, err
	}

	cfg.Service.Logging.ServiceName = cfg.Service.Name

	if err := NewValidator().Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *ServiceConfig) error {
	if err := cv.validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Field(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	return cv.validateSemantics(cfg)
}

func (cv *ConfigValidator) validateSemantics(cfg *ServiceConfig) error {
	// 1. O store precisa saber onde persistir
	if cfg.Todos.TableName == "" {
		return fmt.Errorf("configuração inválida: 'todos.table_name' (ou TODOS_TABLE) é obrigatório")
	}
	if cfg.Todos.BucketName == "" {
		return fmt.Errorf("configuração inválida: 'todos.bucket_name' (ou ATTACHMENTS_BUCKET) é obrigatório")
	}

	// 2. Auth habilitado exige exatamente uma fonte de segredo
	if cfg.Auth.Enabled {
		if cfg.Auth.Secret == "" && cfg.Auth.SecretID == "" {
			return fmt.Errorf("configuração inválida: auth habilitado sem 'secret' nem 'secret_id'")
		}
		if cfg.Auth.Secret != "" && cfg.Auth.SecretID != "" {
			return fmt.Errorf("configuração inválida: defina 'secret' ou 'secret_id', não ambos")
		}
	}

	return nil
}

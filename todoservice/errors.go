// todoservice/errors.go
package todoservice

import (
	"fmt"

	"github.com/raywall/todo-quick-service/todostore"
)

// ErrNotFound é reexportado do store: a camada de transporte não precisa
// conhecer o pacote todostore para mapear o erro em 404.
var ErrNotFound = todostore.ErrNotFound

// ValidationError é retornado quando um campo obrigatório está ausente ou
// malformado. Nenhuma escrita parcial ocorre quando ele é retornado.
type ValidationError struct {
	// Field é o nome do campo inválido (ex: "name").
	Field string
	// Reason descreve o problema (ex: "must not be empty").
	Reason string
}

// Error retorna a mensagem formatada da falha de validação.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("todoservice: invalid %s: %s", e.Field, e.Reason)
}

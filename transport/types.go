// transport/types.go
package transport

import (
	"context"

	"github.com/raywall/todo-quick-service/models"
)

const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderAuthorization = "Authorization"
)

// TodoAPI é a superfície do serviço consumida pelo transporte.
type TodoAPI interface {
	ListAll(ctx context.Context) ([]models.TodoItem, error)
	ListForUser(ctx context.Context, userID string) ([]models.TodoItem, error)
	Create(ctx context.Context, userID, name, dueDate string) (models.TodoItem, error)
	Update(ctx context.Context, userID, todoID string, update models.TodoUpdate) error
	Delete(ctx context.Context, userID, todoID string) error
	RequestAttachmentUpload(ctx context.Context, userID, todoID string) (models.UploadHandle, error)
}

// Authenticator valida o token de identidade e devolve o userId.
type Authenticator interface {
	ParseUserID(tokenString string) (string, error)
}

// corsHeaders replica os headers que o frontend espera em toda resposta.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":      "*",
	"Access-Control-Allow-Credentials": "true",
	"Content-Type":                     "application/json",
}

// transport/handler.go
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/raywall/todo-quick-service/auth"
	"github.com/raywall/todo-quick-service/models"
	"github.com/raywall/todo-quick-service/todoservice"
)

// Handler concentra a lógica das operações HTTP, independente de como a
// requisição chegou (API Gateway/Lambda ou servidor local).
type Handler struct {
	svc      TodoAPI
	verifier Authenticator
	validate *validator.Validate
}

// NewHandler cria o handler compartilhado pelos dois transportes.
func NewHandler(svc TodoAPI, verifier Authenticator) *Handler {
	return &Handler{
		svc:      svc,
		verifier: verifier,
		validate: validator.New(),
	}
}

// result é a resposta neutra de transporte: cada adaptador a serializa.
type result struct {
	status int
	body   interface{}
}

type errorBody struct {
	Error string `json:"error"`
}

// authenticate resolve o userId a partir do header Authorization.
func (h *Handler) authenticate(authorizationHeader string) (string, error) {
	token, err := auth.ExtractToken(authorizationHeader)
	if err != nil {
		return "", err
	}
	return h.verifier.ParseUserID(token)
}

func (h *Handler) listTodos(ctx context.Context, userID string) result {
	items, err := h.svc.ListForUser(ctx, userID)
	if err != nil {
		return errResult(ctx, err)
	}
	return result{status: http.StatusOK, body: map[string]interface{}{"items": items}}
}

func (h *Handler) listAllTodos(ctx context.Context) result {
	items, err := h.svc.ListAll(ctx)
	if err != nil {
		return errResult(ctx, err)
	}
	return result{status: http.StatusOK, body: map[string]interface{}{"items": items}}
}

func (h *Handler) createTodo(ctx context.Context, userID string, body []byte) result {
	var req models.CreateTodoRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return result{status: http.StatusBadRequest, body: errorBody{Error: "invalid JSON body"}}
	}
	if err := h.validate.Struct(req); err != nil {
		return result{status: http.StatusBadRequest, body: errorBody{Error: err.Error()}}
	}

	item, err := h.svc.Create(ctx, userID, req.Name, req.DueDate)
	if err != nil {
		return errResult(ctx, err)
	}
	return result{status: http.StatusOK, body: map[string]interface{}{"item": item}}
}

func (h *Handler) updateTodo(ctx context.Context, userID, todoID string, body []byte) result {
	var req models.UpdateTodoRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return result{status: http.StatusBadRequest, body: errorBody{Error: "invalid JSON body"}}
	}
	if err := h.validate.Struct(req); err != nil {
		return result{status: http.StatusBadRequest, body: errorBody{Error: err.Error()}}
	}

	if err := h.svc.Update(ctx, userID, todoID, req.Update()); err != nil {
		return errResult(ctx, err)
	}
	return result{status: http.StatusNoContent}
}

func (h *Handler) deleteTodo(ctx context.Context, userID, todoID string) result {
	if err := h.svc.Delete(ctx, userID, todoID); err != nil {
		return errResult(ctx, err)
	}
	return result{status: http.StatusNoContent}
}

func (h *Handler) generateUploadURL(ctx context.Context, userID, todoID string) result {
	handle, err := h.svc.RequestAttachmentUpload(ctx, userID, todoID)
	if err != nil {
		return errResult(ctx, err)
	}
	return result{status: http.StatusOK, body: map[string]interface{}{
		"uploadUrl": handle.UploadURL,
		"expiresAt": handle.ExpiresAt.Format(time.RFC3339),
	}}
}

// errResult mapeia a taxonomia de erros do serviço em status HTTP.
func errResult(ctx context.Context, err error) result {
	var verr *todoservice.ValidationError
	switch {
	case errors.As(err, &verr):
		return result{status: http.StatusBadRequest, body: errorBody{Error: verr.Error()}}
	case errors.Is(err, todoservice.ErrNotFound):
		return result{status: http.StatusNotFound, body: errorBody{Error: "todo not found"}}
	default:
		zerolog.Ctx(ctx).Error().Err(err).Msg("operação falhou")
		return result{status: http.StatusInternalServerError, body: errorBody{Error: "internal error"}}
	}
}

func unauthorized(err error) result {
	return result{status: http.StatusUnauthorized, body: errorBody{Error: err.Error()}}
}

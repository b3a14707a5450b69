// todoservice/service.go
package todoservice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/raywall/todo-quick-service/models"
	"github.com/raywall/todo-quick-service/pkg/metrics"
	"github.com/raywall/todo-quick-service/todostore"
)

// Service concentra as regras de negócio sobre o TodoStore: geração de
// identidade, escopo por usuário e o fluxo de anexo em duas etapas.
//
// Uma única instância é criada no boot e compartilhada entre invocações; o
// único estado é a configuração injetada.
type Service struct {
	store    todostore.Store
	provider metrics.Provider
}

// New cria o serviço sobre um store já configurado.
func New(store todostore.Store, provider metrics.Provider) *Service {
	if provider == nil {
		provider = &metrics.NoopProvider{}
	}
	return &Service{
		store:    store,
		provider: provider,
	}
}

// ListAll retorna todos os todos de todos os usuários, sem escopo.
//
// Uso administrativo/diagnóstico apenas: é o único ponto da API que enxerga
// além da partição do chamador, de propósito.
func (s *Service) ListAll(ctx context.Context) ([]models.TodoItem, error) {
	return s.store.ListAll(ctx)
}

// ListForUser retorna os todos da partição do usuário.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.TodoItem, error) {
	return s.store.ListForUser(ctx, userID)
}

// Create gera um novo todo para o usuário.
//
// O todoId é um uuid v4 (colisão desprezível), createdAt é o instante da
// chamada em RFC3339 UTC e done nasce false. O nome é obrigatório — a camada
// de transporte já valida, mas o serviço nunca inventa valor para campo
// obrigatório ausente.
func (s *Service) Create(ctx context.Context, userID, name, dueDate string) (models.TodoItem, error) {
	if strings.TrimSpace(name) == "" {
		return models.TodoItem{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	item := models.TodoItem{
		UserID:    userID,
		TodoID:    uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Name:      name,
		DueDate:   dueDate,
		Done:      false,
	}

	stored, err := s.store.Create(ctx, item)
	if err != nil {
		return models.TodoItem{}, err
	}

	zerolog.Ctx(ctx).Info().
		Str("userId", userID).
		Str("todoId", stored.TodoID).
		Msg("todo criado")
	_ = s.provider.Count("todos.created", 1, nil)

	return stored, nil
}

// Delete remove o todo da partição do usuário.
//
// Não há verificação de existência nem de dono: a chave composta
// (userId, todoId) garante que a tentativa de um usuário B contra o todo de A
// atinge uma chave inexistente na partição de B — isolamento estrutural.
// Deletar chave ausente é sucesso (delete idempotente).
func (s *Service) Delete(ctx context.Context, userID, todoID string) error {
	if err := s.store.Delete(ctx, userID, todoID); err != nil {
		return err
	}
	_ = s.provider.Count("todos.deleted", 1, nil)
	return nil
}

// Update substitui name, dueDate e done do todo.
//
// Mesmo isolamento estrutural do Delete; como o store condiciona o update à
// existência da chave, a tentativa cruzada retorna ErrNotFound em vez de
// criar um registro parcial. Last write wins entre updates concorrentes.
func (s *Service) Update(ctx context.Context, userID, todoID string, update models.TodoUpdate) error {
	if strings.TrimSpace(update.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return s.store.UpdateFields(ctx, userID, todoID, update)
}

// RequestAttachmentUpload emite um handle de upload e grava a localização
// futura do objeto no registro, nessa ordem.
//
// Gravar antes do upload acontecer é uma troca deliberada: uma janela curta
// em que attachmentUrl aponta para um objeto que ainda não existe, em vez do
// risco de perder a URL caso uma segunda ida ao banco falhasse depois de um
// upload bem-sucedido. Se o bind falhar, o handle simplesmente expira sem
// uso — não há rollback nem confirmação posterior de que o upload ocorreu.
func (s *Service) RequestAttachmentUpload(ctx context.Context, userID, todoID string) (models.UploadHandle, error) {
	handle, err := s.store.IssueUploadHandle(ctx, todoID)
	if err != nil {
		return models.UploadHandle{}, err
	}

	if err := s.store.BindAttachmentURL(ctx, userID, todoID, handle.ObjectURL); err != nil {
		return models.UploadHandle{}, err
	}

	zerolog.Ctx(ctx).Info().
		Str("userId", userID).
		Str("todoId", todoID).
		Time("expiresAt", handle.ExpiresAt).
		Msg("upload de anexo provisionado")
	_ = s.provider.Count("todos.attachment_requested", 1, nil)

	return handle, nil
}

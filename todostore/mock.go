// todostore/mock.go
package todostore

import (
	"context"

	"github.com/raywall/todo-quick-service/models"
)

// MockStore é um mock completo e fácil de usar para testes da interface Store.
//
// Ele expõe campos de função (`CreateFn`, `DeleteFn`, etc.) que podem ser
// definidos para simular o comportamento desejado do store durante os testes.
// Campos não definidos retornam zero values (ou ErrNotFound onde faz sentido).
type MockStore struct {
	ListAllFn           func(ctx context.Context) ([]models.TodoItem, error)
	ListForUserFn       func(ctx context.Context, userID string) ([]models.TodoItem, error)
	CreateFn            func(ctx context.Context, item models.TodoItem) (models.TodoItem, error)
	DeleteFn            func(ctx context.Context, userID, todoID string) error
	UpdateFieldsFn      func(ctx context.Context, userID, todoID string, update models.TodoUpdate) error
	BindAttachmentURLFn func(ctx context.Context, userID, todoID, url string) error
	IssueUploadHandleFn func(ctx context.Context, todoID string) (models.UploadHandle, error)
}

func (m *MockStore) ListAll(ctx context.Context) ([]models.TodoItem, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *MockStore) ListForUser(ctx context.Context, userID string) ([]models.TodoItem, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *MockStore) Create(ctx context.Context, item models.TodoItem) (models.TodoItem, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, item)
	}
	return item, nil
}

func (m *MockStore) Delete(ctx context.Context, userID, todoID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, todoID)
	}
	return nil
}

func (m *MockStore) UpdateFields(ctx context.Context, userID, todoID string, update models.TodoUpdate) error {
	if m.UpdateFieldsFn != nil {
		return m.UpdateFieldsFn(ctx, userID, todoID, update)
	}
	return ErrNotFound
}

func (m *MockStore) BindAttachmentURL(ctx context.Context, userID, todoID, url string) error {
	if m.BindAttachmentURLFn != nil {
		return m.BindAttachmentURLFn(ctx, userID, todoID, url)
	}
	return ErrNotFound
}

func (m *MockStore) IssueUploadHandle(ctx context.Context, todoID string) (models.UploadHandle, error) {
	if m.IssueUploadHandleFn != nil {
		return m.IssueUploadHandleFn(ctx, todoID)
	}
	return models.UploadHandle{}, nil
}

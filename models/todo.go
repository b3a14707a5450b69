// models/todo.go
package models

import "time"

// TodoItem é a entidade persistida no DynamoDB.
//
// A chave primária é composta: userId (hash) + todoId (range). Os nomes dos
// atributos no DynamoDB são idênticos aos nomes JSON expostos pela API, então
// um único struct serve às duas serializações.
type TodoItem struct {
	UserID        string `dynamodbav:"userId" json:"userId"`
	TodoID        string `dynamodbav:"todoId" json:"todoId"`
	CreatedAt     string `dynamodbav:"createdAt" json:"createdAt"`
	Name          string `dynamodbav:"name" json:"name"`
	DueDate       string `dynamodbav:"dueDate,omitempty" json:"dueDate,omitempty"`
	Done          bool   `dynamodbav:"done" json:"done"`
	AttachmentURL string `dynamodbav:"attachmentUrl,omitempty" json:"attachmentUrl,omitempty"`
}

// TodoUpdate representa a substituição integral dos três campos mutáveis.
// userId, todoId e createdAt nunca mudam após a criação.
type TodoUpdate struct {
	Name    string `dynamodbav:"name" json:"name"`
	DueDate string `dynamodbav:"dueDate" json:"dueDate"`
	Done    bool   `dynamodbav:"done" json:"done"`
}

// CreateTodoRequest é o payload de criação recebido pelo transporte.
type CreateTodoRequest struct {
	Name    string `json:"name" validate:"required"`
	DueDate string `json:"dueDate"`
}

// UpdateTodoRequest é o payload de atualização recebido pelo transporte.
type UpdateTodoRequest struct {
	Name    string `json:"name" validate:"required"`
	DueDate string `json:"dueDate"`
	Done    bool   `json:"done"`
}

// UploadHandle é a autorização temporária de escrita emitida pelo object store.
//
// UploadURL é a URL pré-assinada (PUT) que o cliente usa para subir o arquivo;
// ObjectURL é a localização permanente do objeto, que é o valor gravado em
// attachmentUrl no registro — nunca persistimos a URL assinada, que expira.
type UploadHandle struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectURL string    `json:"objectUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Update converte o request validado no comando de atualização do domínio.
func (r UpdateTodoRequest) Update() TodoUpdate {
	return TodoUpdate{
		Name:    r.Name,
		DueDate: r.DueDate,
		Done:    r.Done,
	}
}

// todostore/types.go
package todostore

import (
	"context"
	"errors"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/raywall/todo-quick-service/models"
)

// ErrNotFound – erro padrão quando o item não existe
var ErrNotFound = errors.New("todostore: item not found")

// DynamoDBClient interface para abstrair o cliente DynamoDB
type DynamoDBClient interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Presigner interface para abstrair a pré-assinatura de uploads no S3
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Store — a superfície de acesso a dados consumida pelo TodoService.
//
// O store não conhece regra de negócio: cada operação é um acesso direto ao
// DynamoDB ou ao S3, sempre escopado pela chave composta (userId, todoId).
type Store interface {
	ListAll(ctx context.Context) ([]models.TodoItem, error)
	ListForUser(ctx context.Context, userID string) ([]models.TodoItem, error)
	Create(ctx context.Context, item models.TodoItem) (models.TodoItem, error)
	Delete(ctx context.Context, userID, todoID string) error
	UpdateFields(ctx context.Context, userID, todoID string, update models.TodoUpdate) error
	BindAttachmentURL(ctx context.Context, userID, todoID, url string) error
	IssueUploadHandle(ctx context.Context, todoID string) (models.UploadHandle, error)
}

// Config — configuração estática da tabela e do bucket de anexos.
//
// Campos vazios são preenchidos a partir das variáveis de ambiente via
// envloader, permitindo construir o store sem configuração explícita em
// ambientes Lambda.
type Config struct {
	TableName        string `env:"TODOS_TABLE"`
	BucketName       string `env:"ATTACHMENTS_BUCKET"`
	URLExpirySeconds int    `env:"UPLOAD_URL_EXPIRY_SECONDS" envDefault:"300"`
}

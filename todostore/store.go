// todostore/store.go
package todostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/raywall/todo-quick-service/envloader"
	"github.com/raywall/todo-quick-service/models"
)

type dynamoStore struct {
	client    DynamoDBClient
	presigner Presigner
	cfg       Config
}

// New cria um store reutilizável sobre o DynamoDB e o S3.
//
// A instância é stateless além da configuração: pode (e deve) ser criada uma
// única vez no boot e compartilhada entre todas as invocações.
func New(client DynamoDBClient, presigner Presigner, cfg Config) Store {
	if cfg.TableName == "" || cfg.BucketName == "" {
		_ = envloader.Load(&cfg)
	}
	if cfg.URLExpirySeconds <= 0 {
		cfg.URLExpirySeconds = 300
	}

	return &dynamoStore{
		client:    client,
		presigner: presigner,
		cfg:       cfg,
	}
}

// ListAll faz um Scan completo da tabela, sem filtro de usuário.
//
// Não há paginação: uma única página do Scan é retornada. Quando o DynamoDB
// indica truncamento, apenas logamos — o limite é conhecido e aceito.
func (s *dynamoStore) ListAll(ctx context.Context) ([]models.TodoItem, error) {
	out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.cfg.TableName),
	})
	if err != nil {
		return nil, fmt.Errorf("todostore: scan failed: %w", err)
	}

	if out.LastEvaluatedKey != nil {
		zerolog.Ctx(ctx).Warn().
			Str("table", s.cfg.TableName).
			Msg("scan truncado: resultado parcial retornado")
	}

	return unmarshalItems(out.Items)
}

// ListForUser retorna todos os todos da partição do usuário.
//
// Partição vazia não é erro: retorna slice vazio.
func (s *dynamoStore) ListForUser(ctx context.Context, userID string) ([]models.TodoItem, error) {
	keyCond := expression.KeyEqual(expression.Key("userId"), expression.Value(userID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("todostore: build query expression failed: %w", err)
	}

	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.cfg.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("todostore: query failed: %w", err)
	}

	if out.LastEvaluatedKey != nil {
		zerolog.Ctx(ctx).Warn().
			Str("table", s.cfg.TableName).
			Str("userId", userID).
			Msg("query truncada: resultado parcial retornado")
	}

	return unmarshalItems(out.Items)
}

// Create persiste o item (upsert incondicional, chaveado por userId+todoId).
//
// A unicidade do todoId é garantida por quem gera o id, não pelo store.
func (s *dynamoStore) Create(ctx context.Context, item models.TodoItem) (models.TodoItem, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return models.TodoItem{}, fmt.Errorf("todostore: marshal failed: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.cfg.TableName),
		Item:      av,
	})
	if err != nil {
		return models.TodoItem{}, fmt.Errorf("todostore: put failed: %w", err)
	}
	return item, nil
}

// Delete remove o item. Chave inexistente não é erro (delete idempotente).
func (s *dynamoStore) Delete(ctx context.Context, userID, todoID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.cfg.TableName),
		Key:       todoKey(userID, todoID),
	})
	if err != nil {
		return fmt.Errorf("todostore: delete failed: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("todoId", todoID).Msg("todo removido")
	return nil
}

// UpdateFields substitui exatamente name, dueDate e done.
//
// A condição attribute_exists(todoId) impede que o UpdateItem crie um registro
// parcial quando a chave não existe na partição do usuário; nesse caso o erro
// retornado é ErrNotFound.
func (s *dynamoStore) UpdateFields(ctx context.Context, userID, todoID string, update models.TodoUpdate) error {
	upd := expression.
		Set(expression.Name("name"), expression.Value(update.Name)).
		Set(expression.Name("dueDate"), expression.Value(update.DueDate)).
		Set(expression.Name("done"), expression.Value(update.Done))

	return s.update(ctx, userID, todoID, upd)
}

// BindAttachmentURL grava attachmentUrl deixando os demais campos intactos.
func (s *dynamoStore) BindAttachmentURL(ctx context.Context, userID, todoID, url string) error {
	upd := expression.Set(expression.Name("attachmentUrl"), expression.Value(url))
	return s.update(ctx, userID, todoID, upd)
}

func (s *dynamoStore) update(ctx context.Context, userID, todoID string, upd expression.UpdateBuilder) error {
	expr, err := expression.NewBuilder().
		WithUpdate(upd).
		WithCondition(expression.AttributeExists(expression.Name("todoId"))).
		Build()
	if err != nil {
		return fmt.Errorf("todostore: build update expression failed: %w", err)
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.cfg.TableName),
		Key:                       todoKey(userID, todoID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condErr *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrNotFound
		}
		return fmt.Errorf("todostore: update failed: %w", err)
	}
	return nil
}

// IssueUploadHandle emite uma URL pré-assinada de PUT para a chave todoID.
//
// Não toca o registro do todo: o binding de attachmentUrl é responsabilidade
// do serviço, que decide a ordem das duas etapas.
func (s *dynamoStore) IssueUploadHandle(ctx context.Context, todoID string) (models.UploadHandle, error) {
	expiry := time.Duration(s.cfg.URLExpirySeconds) * time.Second

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.BucketName),
		Key:    aws.String(todoID),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return models.UploadHandle{}, fmt.Errorf("todostore: presign upload failed: %w", err)
	}

	return models.UploadHandle{
		UploadURL: req.URL,
		ObjectURL: fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.cfg.BucketName, todoID),
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// todoKey monta a chave composta (userId, todoId).
func todoKey(userID, todoID string) map[string]ddbtypes.AttributeValue {
	return map[string]ddbtypes.AttributeValue{
		"userId": &ddbtypes.AttributeValueMemberS{Value: userID},
		"todoId": &ddbtypes.AttributeValueMemberS{Value: todoID},
	}
}

func unmarshalItems(items []map[string]ddbtypes.AttributeValue) ([]models.TodoItem, error) {
	result := make([]models.TodoItem, 0, len(items))
	for _, item := range items {
		var t models.TodoItem
		if err := attributevalue.UnmarshalMap(item, &t); err != nil {
			return nil, fmt.Errorf("todostore: unmarshal failed: %w", err)
		}
		result = append(result, t)
	}
	return result, nil
}

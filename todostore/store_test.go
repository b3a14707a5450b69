// todostore/store_test.go
package todostore_test

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/raywall/todo-quick-service/models"
	"github.com/raywall/todo-quick-service/todostore"
)

type MockDynamoClient struct {
	mock.Mock
}

func (m *MockDynamoClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.ScanOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDynamoClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.QueryOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDynamoClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.PutItemOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDynamoClient) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.UpdateItemOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDynamoClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.DeleteItemOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPresigner struct {
	mock.Mock
}

func (m *MockPresigner) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params, optFns)
	if out := args.Get(0); out != nil {
		return out.(*v4.PresignedHTTPRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func testConfig() todostore.Config {
	return todostore.Config{
		TableName:        "test-todos",
		BucketName:       "test-attachments",
		URLExpirySeconds: 300,
	}
}

func attrItem(userID, todoID, name string, done bool) map[string]ddbtypes.AttributeValue {
	return map[string]ddbtypes.AttributeValue{
		"userId":    &ddbtypes.AttributeValueMemberS{Value: userID},
		"todoId":    &ddbtypes.AttributeValueMemberS{Value: todoID},
		"createdAt": &ddbtypes.AttributeValueMemberS{Value: "2024-01-01T10:00:00Z"},
		"name":      &ddbtypes.AttributeValueMemberS{Value: name},
		"done":      &ddbtypes.AttributeValueMemberBOOL{Value: done},
	}
}

func TestCreate_Success(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := todostore.New(mockClient, nil, testConfig())

	item := models.TodoItem{
		UserID:    "u1",
		TodoID:    "t1",
		CreatedAt: "2024-01-01T10:00:00Z",
		Name:      "Buy milk",
		DueDate:   "2024-01-01",
	}

	mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		if aws.ToString(in.TableName) != "test-todos" {
			return false
		}
		userID, ok := in.Item["userId"].(*ddbtypes.AttributeValueMemberS)
		todoID, ok2 := in.Item["todoId"].(*ddbtypes.AttributeValueMemberS)
		done, ok3 := in.Item["done"].(*ddbtypes.AttributeValueMemberBOOL)
		return ok && ok2 && ok3 && userID.Value == "u1" && todoID.Value == "t1" && !done.Value
	})).Return(&dynamodb.PutItemOutput{}, nil)

	stored, err := store.Create(context.Background(), item)

	require.NoError(t, err)
	assert.Equal(t, item, stored)
	mockClient.AssertExpectations(t)
}

func TestCreate_OmitsAbsentAttachmentURL(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := todostore.New(mockClient, nil, testConfig())

	mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		_, present := in.Item["attachmentUrl"]
		return !present
	})).Return(&dynamodb.PutItemOutput{}, nil)

	_, err := store.Create(context.Background(), models.TodoItem{UserID: "u1", TodoID: "t1", Name: "x"})

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestListForUser_Success(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := todostore.New(mockClient, nil, testConfig())

	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		if aws.ToString(in.TableName) != "test-todos" || in.KeyConditionExpression == nil {
			return false
		}
		// a condição de chave deve referenciar somente o userId informado
		for _, v := range in.ExpressionAttributeValues {
			if s, ok := v.(*ddbtypes.AttributeValueMemberS); ok && s.Value == "u1" {
				return true
			}
		}
		return false
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]ddbtypes.AttributeValue{
			attrItem("u1", "t1", "Buy milk", false),
			attrItem("u1", "t2", "Walk dog", true),
		},
	}, nil)

	items, err := store.ListForUser(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Buy milk", items[0].Name)
	assert.True(t, items[1].Done)
	mockClient.AssertExpectations(t)
}

func TestListForUser_EmptyPartition(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := todostore.New(mockClient, nil, testConfig())

	mockClient.On("Query", mock.Anything, mock.Anything).
		Return(&dynamodb.QueryOutput{Items: nil}, nil)

	items, err := store.ListForUser(context.Background(), "nobody")

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListAll_Success(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := todostore.New(mockClient, nil, testConfig())

	mockClient.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return aws.ToString(in.TableName) == "test-todos" && in.FilterExpression == nil
	})).Return(&dynamodb.ScanOutput{
		Items: []map[string]ddbtypes.AttributeValue{
			attrItem("u1", "t1", "Buy milk", false),
			attrItem("u2", "t9", "Pay rent", false),
		},
	}, nil)

	items, err := store.ListAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestDelete_Idempotent(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := todostore.New(mockClient, nil, testConfig())

	mockClient.On("DeleteItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.DeleteItemInput) bool {
		userID := in.Key["userId"].(*ddbtypes.AttributeValueMemberS)
		todoID := in.Key["todoId"].(*ddbtypes.AttributeValueMemberS)
		return userID.Value == "u1" && todoID.Value == "t1"
	})).Return(&dynamodb.DeleteItemOutput{}, nil).Twice()

	// DeleteItem do DynamoDB não falha para chave ausente; duas chamadas
	// seguidas devem ser idênticas do ponto de vista do caller
	require.NoError(t, store.Delete(context.Background(), "u1", "t1"))
	require.NoError(t, store.Delete(context.Background(), "u1", "t1"))
	mockClient.AssertExpectations(t)
}

func TestUpdateFields_SetsExactlyMutableFields(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := todostore.New(mockClient, nil, testConfig())

	var captured *dynamodb.UpdateItemInput
	mockClient.On("UpdateItem", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*dynamodb.UpdateItemInput)
		}).
		Return(&dynamodb.UpdateItemOutput{}, nil)

	err := store.UpdateFields(context.Background(), "u1", "t1", models.TodoUpdate{
		Name:    "Buy oat milk",
		DueDate: "2024-01-02",
		Done:    true,
	})

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.NotNil(t, captured.UpdateExpression)
	assert.NotNil(t, captured.ConditionExpression)

	names := make(map[string]bool)
	for _, n := range captured.ExpressionAttributeNames {
		names[n] = true
	}
	assert.True(t, names["name"])
	assert.True(t, names["dueDate"])
	assert.True(t, names["done"])
	assert.False(t, names["attachmentUrl"])
	assert.False(t, names["createdAt"])
}

func TestUpdateFields_MissingItemIsNotFound(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := todostore.New(mockClient, nil, testConfig())

	mockClient.On("UpdateItem", mock.Anything, mock.Anything).
		Return(nil, &ddbtypes.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")})

	err := store.UpdateFields(context.Background(), "u1", "missing", models.TodoUpdate{Name: "x"})

	assert.ErrorIs(t, err, todostore.ErrNotFound)
}

func TestBindAttachmentURL_SetsOnlyAttachmentURL(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	store := todostore.New(mockClient, nil, testConfig())

	var captured *dynamodb.UpdateItemInput
	mockClient.On("UpdateItem", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*dynamodb.UpdateItemInput)
		}).
		Return(&dynamodb.UpdateItemOutput{}, nil)

	url := "https://test-attachments.s3.amazonaws.com/t1"
	err := store.BindAttachmentURL(context.Background(), "u1", "t1", url)

	require.NoError(t, err)
	require.NotNil(t, captured)

	names := make(map[string]bool)
	for _, n := range captured.ExpressionAttributeNames {
		names[n] = true
	}
	assert.True(t, names["attachmentUrl"])
	assert.False(t, names["name"])

	found := false
	for _, v := range captured.ExpressionAttributeValues {
		if s, ok := v.(*ddbtypes.AttributeValueMemberS); ok && s.Value == url {
			found = true
		}
	}
	assert.True(t, found, "attachmentUrl deve aparecer nos valores da expressão")
}

func TestIssueUploadHandle_Success(t *testing.T) {
	t.Parallel()

	presigner := &MockPresigner{}
	store := todostore.New(&MockDynamoClient{}, presigner, testConfig())

	presigner.On("PresignPutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "test-attachments" && aws.ToString(in.Key) == "t1"
	}), mock.Anything).Return(&v4.PresignedHTTPRequest{
		URL:    "https://test-attachments.s3.amazonaws.com/t1?X-Amz-Signature=abc",
		Method: "PUT",
	}, nil)

	before := time.Now()
	handle, err := store.IssueUploadHandle(context.Background(), "t1")

	require.NoError(t, err)
	assert.Contains(t, handle.UploadURL, "X-Amz-Signature")
	assert.Equal(t, "https://test-attachments.s3.amazonaws.com/t1", handle.ObjectURL)
	assert.True(t, handle.ExpiresAt.After(before), "expiração deve estar no futuro")
	assert.WithinDuration(t, before.Add(300*time.Second), handle.ExpiresAt, 5*time.Second)
	presigner.AssertExpectations(t)
}

func TestIssueUploadHandle_PresignFailure(t *testing.T) {
	t.Parallel()

	presigner := &MockPresigner{}
	store := todostore.New(&MockDynamoClient{}, presigner, testConfig())

	presigner.On("PresignPutObject", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	_, err := store.IssueUploadHandle(context.Background(), "t1")

	assert.ErrorIs(t, err, assert.AnError)
}

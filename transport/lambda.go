// transport/lambda.go
package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LambdaHandler adapta eventos do API Gateway para o Handler compartilhado.
type LambdaHandler struct {
	h *Handler
}

// NewLambdaHandler cria uma nova instância do adaptador
func NewLambdaHandler(h *Handler) *LambdaHandler {
	return &LambdaHandler{h: h}
}

// Handle processa a requisição Lambda
func (l *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()

	corrID := req.Headers[HeaderCorrelationID]
	if corrID == "" {
		// API Gateway pode normalizar o case do header
		corrID = req.Headers["X-Correlation-Id"]
	}
	if corrID == "" {
		corrID = uuid.NewString()
	}

	logger := log.With().Str("correlation_id", corrID).Logger()
	ctx = logger.WithContext(ctx)

	res := l.route(ctx, req)
	response := toProxyResponse(res, corrID)

	logger.Info().
		Str("method", req.HTTPMethod).
		Str("path", req.Path).
		Int("status", response.StatusCode).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("lambda request completed")

	return response, nil
}

func (l *LambdaHandler) route(ctx context.Context, req events.APIGatewayProxyRequest) result {
	segments := splitPath(req.Path)

	// rota administrativa, sem escopo de usuário
	if req.HTTPMethod == http.MethodGet && len(segments) == 2 &&
		segments[0] == "admin" && segments[1] == "todos" {
		if _, err := l.h.authenticate(req.Headers[HeaderAuthorization]); err != nil {
			return unauthorized(err)
		}
		return l.h.listAllTodos(ctx)
	}

	if len(segments) == 0 || segments[0] != "todos" {
		return result{status: http.StatusNotFound, body: errorBody{Error: "route not found"}}
	}

	userID, err := l.h.authenticate(req.Headers[HeaderAuthorization])
	if err != nil {
		return unauthorized(err)
	}

	switch {
	case req.HTTPMethod == http.MethodGet && len(segments) == 1:
		return l.h.listTodos(ctx, userID)

	case req.HTTPMethod == http.MethodPost && len(segments) == 1:
		return l.h.createTodo(ctx, userID, []byte(req.Body))

	case req.HTTPMethod == http.MethodPatch && len(segments) == 2:
		return l.h.updateTodo(ctx, userID, segments[1], []byte(req.Body))

	case req.HTTPMethod == http.MethodDelete && len(segments) == 2:
		return l.h.deleteTodo(ctx, userID, segments[1])

	case req.HTTPMethod == http.MethodPost && len(segments) == 3 && segments[2] == "attachment":
		return l.h.generateUploadURL(ctx, userID, segments[1])

	default:
		return result{status: http.StatusNotFound, body: errorBody{Error: "route not found"}}
	}
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func toProxyResponse(res result, corrID string) events.APIGatewayProxyResponse {
	headers := make(map[string]string, len(corsHeaders)+1)
	for k, v := range corsHeaders {
		headers[k] = v
	}
	headers[HeaderCorrelationID] = corrID

	body := ""
	if res.body != nil {
		if b, err := json.Marshal(res.body); err == nil {
			body = string(b)
		}
	}

	return events.APIGatewayProxyResponse{
		StatusCode: res.status,
		Headers:    headers,
		Body:       body,
	}
}

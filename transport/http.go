// transport/http.go
package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// NewRouter monta o roteador HTTP local com as mesmas rotas expostas via
// API Gateway em produção.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/admin/todos", func(w http.ResponseWriter, req *http.Request) {
		if _, err := h.authenticate(req.Header.Get(HeaderAuthorization)); err != nil {
			writeResult(w, unauthorized(err))
			return
		}
		writeResult(w, h.listAllTodos(req.Context()))
	}).Methods(http.MethodGet)

	r.HandleFunc("/todos", withUser(h, func(w http.ResponseWriter, req *http.Request, userID string) {
		writeResult(w, h.listTodos(req.Context(), userID))
	})).Methods(http.MethodGet)

	r.HandleFunc("/todos", withUser(h, func(w http.ResponseWriter, req *http.Request, userID string) {
		body, _ := io.ReadAll(req.Body)
		writeResult(w, h.createTodo(req.Context(), userID, body))
	})).Methods(http.MethodPost)

	r.HandleFunc("/todos/{todoId}", withUser(h, func(w http.ResponseWriter, req *http.Request, userID string) {
		body, _ := io.ReadAll(req.Body)
		writeResult(w, h.updateTodo(req.Context(), userID, mux.Vars(req)["todoId"], body))
	})).Methods(http.MethodPatch)

	r.HandleFunc("/todos/{todoId}", withUser(h, func(w http.ResponseWriter, req *http.Request, userID string) {
		writeResult(w, h.deleteTodo(req.Context(), userID, mux.Vars(req)["todoId"]))
	})).Methods(http.MethodDelete)

	r.HandleFunc("/todos/{todoId}/attachment", withUser(h, func(w http.ResponseWriter, req *http.Request, userID string) {
		writeResult(w, h.generateUploadURL(req.Context(), userID, mux.Vars(req)["todoId"]))
	})).Methods(http.MethodPost)

	r.Use(observabilityMiddleware)
	return r
}

// StartHTTPServer sobe o servidor local na porta configurada.
func StartHTTPServer(h *Handler, port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Info().Msgf("Servidor HTTP ouvindo em %s", addr)
	return http.ListenAndServe(addr, NewRouter(h))
}

func withUser(h *Handler, next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		userID, err := h.authenticate(req.Header.Get(HeaderAuthorization))
		if err != nil {
			writeResult(w, unauthorized(err))
			return
		}
		next(w, req, userID)
	}
}

// observabilityMiddleware injeta correlation id no contexto/logger e registra
// a latência de cada requisição.
func observabilityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()

		corrID := req.Header.Get(HeaderCorrelationID)
		if corrID == "" {
			corrID = uuid.NewString()
		}

		logger := log.With().Str("correlation_id", corrID).Logger()
		req = req.WithContext(logger.WithContext(req.Context()))

		w.Header().Set(HeaderCorrelationID, corrID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)

		logger.Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", rec.status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Msg("http request completed")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeResult(w http.ResponseWriter, res result) {
	for k, v := range corsHeaders {
		w.Header().Set(k, v)
	}
	w.WriteHeader(res.status)
	if res.body != nil {
		_ = json.NewEncoder(w).Encode(res.body)
	}
}

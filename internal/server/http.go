package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/question"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const readinessTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// NewHTTPServer wraps NewHandler in an http.Server bound to cfg.HTTPAddr.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, checks map[string]HealthCheck, questions *question.HTTPHandlers, quizSocket http.HandlerFunc) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(cfg, logger, checks, questions, quizSocket),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// NewHandler wires the trivia routes under cfg.BasePath plus health and metrics
// routes, wrapped in the middleware chain.
func NewHandler(cfg *config.App, logger zerolog.Logger, checks map[string]HealthCheck, questions *question.HTTPHandlers, quizSocket http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /readyz", readinessHandler(checks, logger))
	mux.Handle("GET /metrics", promhttp.Handler())

	base := cfg.BasePath
	mux.HandleFunc("GET "+base+"/categories", questions.GetCategories)
	mux.HandleFunc("GET "+base+"/categories/{id}/questions", questions.QuestionsByCategory)
	mux.HandleFunc("GET "+base+"/questions", questions.ListQuestions)
	mux.HandleFunc("POST "+base+"/questions", questions.CreateQuestion)
	mux.HandleFunc("POST "+base+"/questions/search", questions.SearchQuestions)
	mux.HandleFunc("DELETE "+base+"/questions/{id}", questions.DeleteQuestion)
	mux.HandleFunc("POST "+base+"/quizzes", questions.PlayQuiz)
	if quizSocket != nil {
		mux.HandleFunc("GET "+base+"/quizzes/ws", quizSocket)
	}

	// Known paths with an unsupported method get the JSON 405 envelope
	// instead of the mux's plain-text reply.
	for _, path := range []string{
		"/categories",
		"/categories/{id}/questions",
		"/questions",
		"/questions/{id}",
		"/quizzes",
	} {
		mux.HandleFunc(base+path, methodNotAllowed)
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})

	var handler http.Handler = mux
	handler = instrument(handler)
	handler = cors(cfg.CORS, handler)
	handler = requestLogger(logger, handler)
	handler = recoverer(logger, handler)
	return handler
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httperrors.RespondMethodNotAllowed(w)
}

func readinessHandler(checks map[string]HealthCheck, logger zerolog.Logger) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := make(map[string]string, len(names))
		healthy := true
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger.Error().Err(err).Str("dependency", name).Msg("dependency ping failed")
				status[name] = "unavailable"
				healthy = false
				continue
			}
			status[name] = "ok"
		}

		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]interface{}{
			"ready":        healthy,
			"dependencies": status,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

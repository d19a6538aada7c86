// Package server exposes the tool registry over HTTP.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/dealer-scout/internal/tools"
)

// maxBodyBytes caps a tool request body.
const maxBodyBytes = 1 << 20

type toolInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Parameters  []string `json:"parameters"`
}

type toolResponse struct {
	Tool   string `json:"tool"`
	Result string `json:"result"`
}

// NewRouter builds the HTTP handler: GET /health, GET /tools and
// POST /tools/{name}. CORS is open to any origin.
func NewRouter(reg *tools.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/tools", func(w http.ResponseWriter, _ *http.Request) {
		all := reg.All()
		out := make([]toolInfo, 0, len(all))
		for _, t := range all {
			out = append(out, toolInfo{Name: t.Name(), Description: t.Description(), Parameters: t.Parameters()})
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Post("/tools/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		if _, err := reg.Get(name); err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown tool"})
			return
		}

		args := tools.Args{}
		if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes)).Decode(&args); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		result, err := reg.Invoke(req.Context(), name, args)
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown tool"})
			return
		}
		writeJSON(w, http.StatusOK, toolResponse{Tool: name, Result: result})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}

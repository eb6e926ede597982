// Package api exposes the graph repository over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/relgraph/relgraph/pkg/graph"
)

// Server holds the HTTP handler dependencies. The repository assumes a
// single caller at a time, so a mutex serializes operations across
// concurrent requests.
type Server struct {
	mu   sync.Mutex
	repo *graph.Repository
	log  *slog.Logger
}

// New creates an API server over a repository.
func New(repo *graph.Repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{repo: repo, log: logger}
}

// Routes mounts the API endpoints on a chi router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Post("/nodes", s.CreateNodes)
		r.Get("/nodes/{id}", s.GetNode)
		r.Get("/nodes/{id}/related/{relation}", s.GetRelated)
		r.Patch("/nodes", s.UpdateNodes)
		r.Delete("/nodes/{id}", s.DeleteNode)
		r.Post("/nodes/delete", s.DeleteNodes)
		r.Post("/query", s.Query)
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateNodes handles POST /api/nodes. The body is a create input or a
// list of create inputs.
func (s *Server) CreateNodes(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch input := body.(type) {
	case map[string]any:
		model, err := s.repo.Create(input)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, model)
	case []any:
		inputs := make([]map[string]any, len(input))
		for i, raw := range input {
			m, ok := raw.(map[string]any)
			if !ok {
				http.Error(w, "create input must be an object or list of objects", http.StatusBadRequest)
				return
			}
			inputs[i] = m
		}
		models, err := s.repo.CreateAll(inputs)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, models)
	default:
		http.Error(w, "create input must be an object or list of objects", http.StatusBadRequest)
	}
}

// GetNode handles GET /api/nodes/{id}. Relations named in ?include are
// embedded one level deep.
func (s *Server) GetNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	model, err := s.repo.GetModel(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	payload, err := modelPayload(model, includes(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// GetRelated handles GET /api/nodes/{id}/related/{relation}.
func (s *Server) GetRelated(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	relation := chi.URLParam(r, "relation")

	s.mu.Lock()
	defer s.mu.Unlock()

	nodes, err := s.repo.GetRelatedNodes(id, relation)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if nodes == nil {
		nodes = []*graph.Node{}
	}
	writeJSON(w, http.StatusOK, nodes)
}

// Query handles POST /api/query. The body is a find selector: an id, a
// list of ids, a query object, or a list of query objects.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var selector any
	if err := json.NewDecoder(r.Body).Decode(&selector); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	models, err := s.repo.Find(selector)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if models == nil {
		models = []*graph.NodeModel{}
	}
	writeJSON(w, http.StatusOK, models)
}

// UpdateRequest is the body for PATCH /api/nodes.
type UpdateRequest struct {
	Selector any            `json:"selector"`
	Patch    map[string]any `json:"patch"`
}

// UpdateNodes handles PATCH /api/nodes.
func (s *Server) UpdateNodes(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Selector == nil || req.Patch == nil {
		http.Error(w, "selector and patch are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	models, err := s.repo.Update(req.Selector, req.Patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models)
}

// DeleteNode handles DELETE /api/nodes/{id}.
func (s *Server) DeleteNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.repo.Delete(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, removed)
}

// DeleteRequest is the body for POST /api/nodes/delete.
type DeleteRequest struct {
	Selector any `json:"selector"`
}

// DeleteNodes handles POST /api/nodes/delete.
func (s *Server) DeleteNodes(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Selector == nil {
		http.Error(w, "selector is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.repo.Delete(req.Selector)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, removed)
}

// modelPayload flattens a model's value fields and embeds the requested
// relations one level deep.
func modelPayload(model *graph.NodeModel, include []string) (map[string]any, error) {
	record, ok := model.Record()
	if !ok {
		return nil, graph.ErrNotFound
	}
	out := make(map[string]any, len(record.Props)+2+len(include))
	for k, v := range record.Props {
		out[k] = v
	}
	out["id"] = record.ID
	out["kind"] = record.Kind
	for _, name := range include {
		related := model.Related(name)
		embedded := make([]map[string]any, 0, len(related))
		for _, rel := range related {
			r, ok := rel.Record()
			if !ok {
				continue
			}
			flat := make(map[string]any, len(r.Props)+2)
			for k, v := range r.Props {
				flat[k] = v
			}
			flat["id"] = r.ID
			flat["kind"] = r.Kind
			embedded = append(embedded, flat)
		}
		out[name] = embedded
	}
	return out, nil
}

func includes(r *http.Request) []string {
	raw := r.URL.Query().Get("include")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, graph.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, graph.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, graph.ErrNotImplemented):
		status = http.StatusNotImplemented
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", slog.String("error", err.Error()))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

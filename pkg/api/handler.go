package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hazyhaar/termvariant/pkg/tokenizer"
)

// NewRouter returns an http.Handler with all inspection API routes over
// the loaded rule bundle.
func NewRouter(l *tokenizer.Loader, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	h := &handler{
		endpoints: newEndpoints(l, logger),
		loader:    l,
	}

	mux.HandleFunc("GET /v1/analyzers", h.handleListAnalyzers)
	mux.HandleFunc("GET /v1/analyzers/{id}/variants", h.handleVariants)
	mux.HandleFunc("GET /v1/rules/search", h.handleSearchRules)
	mux.HandleFunc("GET /v1/expand", methodNotAllowed) // expansion takes a JSON body
	mux.HandleFunc("POST /v1/expand", h.handleExpand)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	endpoints endpoints
	loader    *tokenizer.Loader
}

// --- list analyzers ---

func (h *handler) handleListAnalyzers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.endpoints.listAnalyzers(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- show variants ---

func (h *handler) handleVariants(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing analyzer id")
		return
	}

	resp, err := h.endpoints.showVariants(r.Context(), &variantsReq{
		Analyzer: id,
		Term:     r.URL.Query().Get("term"),
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- expand one rule ---

type httpExpandRequest struct {
	Rule string `json:"rule"`
}

func (h *handler) handleExpand(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024) // 64 KiB max
	var req httpExpandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.endpoints.expandRule(r.Context(), &expandReq{Rule: req.Rule})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- search rules ---

func (h *handler) handleSearchRules(w http.ResponseWriter, r *http.Request) {
	resp, err := h.endpoints.searchRules(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status    string `json:"status"`
	Analyzers int    `json:"analyzers"`
	Variants  int    `json:"variants"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	total := 0
	ids := h.loader.Analyzers()
	for _, id := range ids {
		a, _ := h.loader.Analyzer(id)
		total += a.VariantCount()
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Analyzers: len(ids),
		Variants:  total,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Package api exposes country resolution over HTTP and MCP, dispatching both
// transports through the same endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hazyhaar/geonorm/pkg/geo"
	"github.com/hazyhaar/geonorm/pkg/kit"
)

// NewRouter returns an http.Handler with all resolver API routes.
func NewRouter(store *geo.Store, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	h := &handler{
		resolve: kit.Chain(logging(logger, "resolve"))(resolveEndpoint(store)),
		batch:   kit.Chain(logging(logger, "resolve_batch"))(resolveBatchEndpoint(store)),
		refdata: kit.Chain(logging(logger, "refdata"))(refdataEndpoint(store)),
		store:   store,
	}

	mux.HandleFunc("GET /v1/resolve/batch", methodNotAllowed) // prevent GET on batch
	mux.HandleFunc("POST /v1/resolve/batch", h.handleBatch)
	mux.HandleFunc("GET /v1/resolve/{value}", h.handleResolve)
	mux.HandleFunc("GET /v1/refdata", h.handleRefdata)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(requestID(mux))
}

type handler struct {
	resolve kit.Endpoint
	batch   kit.Endpoint
	refdata kit.Endpoint
	store   *geo.Store
}

// --- resolve single value ---

func (h *handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	value := r.PathValue("value")
	if value == "" {
		writeError(w, http.StatusBadRequest, "missing value")
		return
	}

	resp, err := h.resolve(r.Context(), &resolveReq{Value: value})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- resolve batch ---

type httpBatchRequest struct {
	Values []string `json:"values"`
}

func (h *handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024) // 64 KiB max
	var req httpBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.batch(r.Context(), &batchReq{Values: req.Values})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- refdata info ---

func (h *handler) handleRefdata(w http.ResponseWriter, r *http.Request) {
	resp, err := h.refdata(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status    string `json:"status"`
	Countries int    `json:"countries"`
	Aliases   int    `json:"aliases"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok"}
	if reg := h.store.Get(); reg != nil {
		resp.Countries = reg.CountryCount()
		resp.Aliases = reg.AliasCount()
	}
	writeJSON(w, http.StatusOK, resp)
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

// requestID assigns each request an ID, honoring X-Request-ID from upstream
// proxies, and echoes it in the response. The logging middleware picks the ID
// up from the context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(kit.WithRequestID(r.Context(), id)))
	})
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

package graph

import (
	"encoding/json"
	"net/http"

	"github.com/Xenpaii/b-store/internal/logger"

	"github.com/vektah/gqlparser/v2"
	"go.uber.org/zap"
)

type graphRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type graphError struct {
	Message string `json:"message"`
}

type graphResponse struct {
	Data   map[string]interface{} `json:"data,omitempty"`
	Errors []graphError           `json:"errors,omitempty"`
}

// Handler serves the single JSON-over-HTTP GraphQL endpoint. Malformed
// request bodies answer 400; anything that fails after the body parsed
// answers 200 with an errors list, GraphQL style.
type Handler struct {
	resolver *Resolver
}

func NewHandler(r *Resolver) *Handler {
	return &Handler{resolver: r}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Preflight gets a bare success even when the handler is mounted
	// without the CORS middleware in front of it.
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		writeResponse(w, http.StatusMethodNotAllowed, graphResponse{
			Errors: []graphError{{Message: "only POST is supported"}},
		})
		return
	}

	log := logger.FromCtx(r.Context())

	var req graphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.resolver.Metrics.BadRequests.Inc()
		log.Warn("rejecting malformed request body", zap.Error(err))
		writeResponse(w, http.StatusBadRequest, graphResponse{
			Errors: []graphError{{Message: "Invalid JSON input"}},
		})
		return
	}

	doc, listErr := gqlparser.LoadQuery(Schema, req.Query)
	if len(listErr) > 0 {
		errs := make([]graphError, 0, len(listErr))
		for _, e := range listErr {
			errs = append(errs, graphError{Message: e.Message})
		}
		writeResponse(w, http.StatusOK, graphResponse{Errors: errs})
		return
	}

	op := doc.Operations.ForName(req.OperationName)
	if op == nil {
		writeResponse(w, http.StatusOK, graphResponse{
			Errors: []graphError{{Message: "operation not found"}},
		})
		return
	}

	data, err := h.resolver.execute(r.Context(), op, req.Variables)
	if err != nil {
		log.Error("operation failed", zap.Error(err))
		writeResponse(w, http.StatusOK, graphResponse{
			Errors: []graphError{{Message: err.Error()}},
		})
		return
	}

	writeResponse(w, http.StatusOK, graphResponse{Data: data})
}

func writeResponse(w http.ResponseWriter, status int, resp graphResponse) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

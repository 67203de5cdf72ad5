package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ArturRossiJunior/Neurix/internal/auth"
	"github.com/ArturRossiJunior/Neurix/internal/middleware"
	"github.com/ArturRossiJunior/Neurix/internal/repo"
)

type FrontendErrorIngestRequest struct {
	RequestID  *string                `json:"request_id"`
	Severity   string                 `json:"severity"` // WARN|ERROR
	Kind       string                 `json:"kind"`
	Message    string                 `json:"message"`
	Stack      *string                `json:"stack,omitempty"`
	HTTPMethod *string                `json:"http_method,omitempty"`
	Path       *string                `json:"path,omitempty"`
	Status     *int                   `json:"status,omitempty"`
	ActionName *string                `json:"action_name,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

func (h *Handler) IngestFrontendError(w http.ResponseWriter, r *http.Request) {
	var req FrontendErrorIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid body"}`, http.StatusBadRequest)
		return
	}
	sev := strings.ToUpper(strings.TrimSpace(req.Severity))
	if sev != "WARN" && sev != "ERROR" {
		http.Error(w, `{"error":"severity inválida"}`, http.StatusBadRequest)
		return
	}
	kind := strings.TrimSpace(req.Kind)
	if kind == "" {
		kind = "FRONTEND_ERROR"
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		msg = "frontend error"
	}

	// Actor (quando há JWT; o endpoint aceita anônimo)
	var professionalID *uuid.UUID
	if c := auth.ClaimsFrom(r.Context()); c != nil && c.UserID != "" {
		if uid, err := uuid.Parse(c.UserID); err == nil {
			professionalID = &uid
		}
	}

	rid := r.Header.Get("X-Request-ID")
	if req.RequestID != nil && strings.TrimSpace(*req.RequestID) != "" {
		rid = strings.TrimSpace(*req.RequestID)
	}
	if rid == "" {
		rid = middleware.RequestIDFromContext(r.Context())
	}
	var ridPtr *string
	if strings.TrimSpace(rid) != "" {
		ridPtr = &rid
	}

	var path *string
	if req.Path != nil && strings.TrimSpace(*req.Path) != "" {
		p := strings.TrimSpace(*req.Path)
		path = &p
	}
	var method *string
	if req.HTTPMethod != nil && strings.TrimSpace(*req.HTTPMethod) != "" {
		m := strings.ToUpper(strings.TrimSpace(*req.HTTPMethod))
		method = &m
	}
	var actionName *string
	if req.ActionName != nil && strings.TrimSpace(*req.ActionName) != "" {
		a := strings.TrimSpace(*req.ActionName)
		actionName = &a
	}

	meta := map[string]interface{}{}
	for k, v := range req.Metadata {
		meta[k] = v
	}
	if req.Status != nil {
		meta["status"] = *req.Status
	}

	k := kind
	m := msg
	ev := repo.ErrorEvent{
		RequestID:      ridPtr,
		Source:         "FRONTEND",
		Severity:       sev,
		ProfessionalID: professionalID,
		HTTPMethod:     method,
		Path:           path,
		ActionName:     actionName,
		Kind:           &k,
		Message:        &m,
		Stack:          req.Stack,
		Metadata:       meta,
	}
	_ = repo.CreateErrorEvent(r.Context(), h.Pool, ev)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
}

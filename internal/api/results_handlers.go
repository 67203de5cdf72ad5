package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ArturRossiJunior/Neurix/internal/repo"
)

type resultItem struct {
	ID                  string  `json:"id"`
	PatientID           string  `json:"patient_id"`
	TargetType          int     `json:"target_type"`
	TotalTiles          int     `json:"total_tiles"`
	TotalTargets        int     `json:"total_targets"`
	CorrectlySelected   int     `json:"correctly_selected"`
	IncorrectlySelected int     `json:"incorrectly_selected"`
	MissedTargets       int     `json:"missed_targets"`
	TotalSelections     int     `json:"total_selections"`
	AccuracyPercent     float64 `json:"accuracy_percent"`
	ElapsedSeconds      int     `json:"elapsed_seconds"`
	TimeLimitSeconds    int     `json:"time_limit_seconds"`
	AppliedAt           string  `json:"applied_at"`
}

func resultToItem(r *repo.AssessmentResult) resultItem {
	return resultItem{
		ID:                  r.ID.String(),
		PatientID:           r.PatientID.String(),
		TargetType:          r.TargetType,
		TotalTiles:          r.TotalTiles,
		TotalTargets:        r.TotalTargets,
		CorrectlySelected:   r.CorrectlySelected,
		IncorrectlySelected: r.IncorrectlySelected,
		MissedTargets:       r.MissedTargets,
		TotalSelections:     r.TotalSelections,
		AccuracyPercent:     r.AccuracyPercent,
		ElapsedSeconds:      r.ElapsedSeconds,
		TimeLimitSeconds:    r.TimeLimitSeconds,
		AppliedAt:           r.AppliedAt.Format(time.RFC3339),
	}
}

func (h *Handler) ListPatientResults(w http.ResponseWriter, r *http.Request) {
	profID, ok := professionalIDFrom(r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	patientID, err := uuid.Parse(mux.Vars(r)["patientId"])
	if err != nil {
		http.Error(w, `{"error":"invalid patient_id"}`, http.StatusBadRequest)
		return
	}
	if _, err := repo.PatientByID(r.Context(), h.Pool, patientID, profID); err != nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	cacheKey := "results:" + patientID.String()
	if b := h.Cache.Get(cacheKey); b != nil {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)
		return
	}
	list, err := repo.AssessmentResultsByPatient(r.Context(), h.Pool, patientID, profID)
	if err != nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	out := make([]resultItem, len(list))
	for i := range list {
		out[i] = resultToItem(&list[i])
	}
	body, _ := json.Marshal(map[string]interface{}{"results": out})
	h.Cache.Set(cacheKey, body)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	profID, ok := professionalIDFrom(r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	resultID, err := uuid.Parse(mux.Vars(r)["resultId"])
	if err != nil {
		http.Error(w, `{"error":"invalid result_id"}`, http.StatusBadRequest)
		return
	}
	res, err := repo.AssessmentResultByID(r.Context(), h.Pool, resultID, profID)
	if err != nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resultToItem(res))
}

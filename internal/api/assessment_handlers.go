package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ArturRossiJunior/Neurix/internal/assessment"
	"github.com/ArturRossiJunior/Neurix/internal/repo"
)

type runOwner struct {
	PatientID      uuid.UUID
	ProfessionalID uuid.UUID
}

func (h *Handler) StartAssessment(w http.ResponseWriter, r *http.Request) {
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
	h.wireRunEviction()
	run := h.Runs.Start(assessment.Config{}, func(run *assessment.Run, score assessment.Score) {
		h.persistResult(run, score, patientID, profID)
	})
	h.runMeta.Store(run.ID, runOwner{PatientID: patientID, ProfessionalID: profID})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id":             run.ID.String(),
		"target_type":        run.TargetType,
		"tiles":              run.Tiles,
		"time_limit_seconds": run.TimeLimitSec(),
	})
}

// persistResult grava o resultado quando a rodada finaliza (timeout ou
// manual). Roda fora do ciclo request/response; falha de gravação não
// desfaz a finalização, só registra o erro.
func (h *Handler) persistResult(run *assessment.Run, score assessment.Score, patientID, profID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res := &repo.AssessmentResult{
		PatientID:           patientID,
		ProfessionalID:      profID,
		RunID:               run.ID,
		TargetType:          run.TargetType,
		TotalTiles:          score.TotalTiles,
		TotalTargets:        score.TotalTargets,
		CorrectlySelected:   score.CorrectlySelected,
		IncorrectlySelected: score.IncorrectlySelected,
		MissedTargets:       score.MissedTargets,
		TotalSelections:     score.TotalSelections,
		AccuracyPercent:     score.AccuracyPercent,
		ElapsedSeconds:      score.ElapsedSeconds,
		TimeLimitSeconds:    score.TimeLimitSeconds,
		AppliedAt:           run.StartedAt,
	}
	if err := repo.CreateAssessmentResult(ctx, h.Pool, res); err != nil {
		log.Printf("[assessment] falha ao gravar resultado da rodada %s: %v", run.ID, err)
		return
	}
	h.Cache.DeletePrefix("results:" + patientID.String())
}

// runFor resolve a rodada e confere que pertence ao profissional autenticado.
func (h *Handler) runFor(w http.ResponseWriter, r *http.Request) (*assessment.Run, bool) {
	profID, ok := professionalIDFrom(r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return nil, false
	}
	runID, err := uuid.Parse(mux.Vars(r)["runId"])
	if err != nil {
		http.Error(w, `{"error":"invalid run_id"}`, http.StatusBadRequest)
		return nil, false
	}
	run, ok := h.Runs.Get(runID)
	if !ok {
		h.runMeta.Delete(runID)
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return nil, false
	}
	meta, ok := h.runMeta.Load(runID)
	if !ok || meta.(runOwner).ProfessionalID != profID {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
		return nil, false
	}
	return run, true
}

func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	run, ok := h.runFor(w, r)
	if !ok {
		return
	}
	out := map[string]interface{}{
		"run_id":             run.ID.String(),
		"target_type":        run.TargetType,
		"remaining_seconds":  run.Remaining(),
		"time_limit_seconds": run.TimeLimitSec(),
		"finished":           run.Finished(),
		"selected":           run.Selected(),
	}
	if score, scored := run.Score(); scored {
		out["score"] = score
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

type ToggleTileRequest struct {
	TileID string `json:"tile_id"`
}

func (h *Handler) ToggleTile(w http.ResponseWriter, r *http.Request) {
	run, ok := h.runFor(w, r)
	if !ok {
		return
	}
	var req ToggleTileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TileID == "" {
		http.Error(w, `{"error":"tile_id required"}`, http.StatusBadRequest)
		return
	}
	selected, err := run.Toggle(req.TileID)
	if err != nil {
		if errors.Is(err, assessment.ErrUnknownTile) {
			http.Error(w, `{"error":"unknown tile"}`, http.StatusBadRequest)
			return
		}
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"tile_id":           req.TileID,
		"selected":          selected,
		"remaining_seconds": run.Remaining(),
		"finished":          run.Finished(),
	})
}

func (h *Handler) FinishAssessment(w http.ResponseWriter, r *http.Request) {
	run, ok := h.runFor(w, r)
	if !ok {
		return
	}
	score, finalized := run.Finish()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id":           run.ID.String(),
		"score":            score,
		"already_finished": !finalized,
	})
}

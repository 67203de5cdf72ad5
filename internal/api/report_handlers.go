package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ArturRossiJunior/Neurix/internal/pdf"
	"github.com/ArturRossiJunior/Neurix/internal/repo"
	"github.com/ArturRossiJunior/Neurix/internal/validate"
)

// GetResultPDF gera o laudo em PDF de um resultado persistido.
func (h *Handler) GetResultPDF(w http.ResponseWriter, r *http.Request) {
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
	patient, err := repo.PatientByID(r.Context(), h.Pool, res.PatientID, profID)
	if err != nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	prof, err := repo.ProfessionalByID(r.Context(), h.Pool, profID)
	if err != nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	resultURL := ""
	if h.Cfg.AppPublicURL != "" {
		resultURL = h.Cfg.AppPublicURL + "/results/" + res.ID.String()
	}
	data := pdf.ReportData{
		PatientName:         patient.FullName,
		PatientAge:          validate.DetailedAge(patient.BirthDate, time.Now()),
		ProfessionalName:    prof.FullName,
		ProfessionalCRM:     prof.CRM,
		AppliedAt:           res.AppliedAt.Format("02/01/2006 15:04"),
		TargetType:          res.TargetType,
		TotalTiles:          res.TotalTiles,
		TotalTargets:        res.TotalTargets,
		CorrectlySelected:   res.CorrectlySelected,
		IncorrectlySelected: res.IncorrectlySelected,
		MissedTargets:       res.MissedTargets,
		TotalSelections:     res.TotalSelections,
		AccuracyPercent:     res.AccuracyPercent,
		ElapsedSeconds:      res.ElapsedSeconds,
		TimeLimitSeconds:    res.TimeLimitSeconds,
		ResultURL:           resultURL,
	}
	out, err := pdf.BuildResultPDF(data)
	if err != nil {
		http.Error(w, `{"error":"pdf"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resultado-`+res.ID.String()+`.pdf"`)
	_, _ = w.Write(out)
}

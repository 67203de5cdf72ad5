package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/ArturRossiJunior/Neurix/internal/crypto"
	"github.com/ArturRossiJunior/Neurix/internal/repo"
	"github.com/ArturRossiJunior/Neurix/internal/validate"
)

type PatientRequest struct {
	FullName   string  `json:"full_name"`
	BirthDate  string  `json:"birth_date"` // DD/MM/YYYY
	CPF        string  `json:"cpf"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Gender     string  `json:"gender"`
	Schooling  string  `json:"schooling"`
	Handedness string  `json:"handedness"`
	Notes      string  `json:"notes"`
	GuardianID *string `json:"guardian_id"`
}

func optionalText(s string) *string {
	if t := strings.TrimSpace(s); t != "" {
		return &t
	}
	return nil
}

func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
	profID, ok := professionalIDFrom(r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	limit, offset := pageParams(r)
	cacheKey := fmt.Sprintf("patients:%s:%d:%d", profID, limit, offset)
	if b := h.Cache.Get(cacheKey); b != nil {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)
		return
	}
	total, err := repo.PatientsCountByProfessional(r.Context(), h.Pool, profID)
	if err != nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	list, err := repo.PatientsByProfessional(r.Context(), h.Pool, profID, limit, offset)
	if err != nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	type patientResp struct {
		ID        string `json:"id"`
		FullName  string `json:"full_name"`
		BirthDate string `json:"birth_date"`
		Age       *int   `json:"age,omitempty"`
	}
	now := time.Now()
	out := make([]patientResp, len(list))
	for i := range list {
		out[i] = patientResp{
			ID:        list[i].ID.String(),
			FullName:  list[i].FullName,
			BirthDate: list[i].BirthDate,
		}
		if age, err := validate.Age(list[i].BirthDate, now); err == nil {
			a := age
			out[i].Age = &a
		}
	}
	body, _ := json.Marshal(map[string]interface{}{
		"patients": out,
		"limit":    limit,
		"offset":   offset,
		"total":    total,
	})
	h.Cache.Set(cacheKey, body)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
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
	p, err := repo.PatientByID(r.Context(), h.Pool, patientID, profID)
	if err != nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	now := time.Now()
	out := map[string]interface{}{
		"id":           p.ID.String(),
		"full_name":    p.FullName,
		"birth_date":   p.BirthDate,
		"phone":        p.Phone,
		"email":        p.Email,
		"gender":       p.Gender,
		"schooling":    p.Schooling,
		"handedness":   p.Handedness,
		"notes":        p.Notes,
		"detailed_age": validate.DetailedAge(p.BirthDate, now),
	}
	if age, err := validate.Age(p.BirthDate, now); err == nil {
		out["age"] = age
	}
	if p.Phone != nil {
		out["phone_display"] = validate.FormatPhone(*p.Phone)
	}
	var cpfStr *string
	if p.CPFKeyVersion != nil && len(p.CPFEncrypted) > 0 && len(p.CPFNonce) > 0 {
		if dec, err := crypto.OpenCPF(h.Keys, p.CPFEncrypted, p.CPFNonce, *p.CPFKeyVersion); err == nil && dec != "" {
			cpfStr = &dec
			out["cpf_display"] = validate.FormatCPF(dec)
		}
	}
	out["cpf"] = cpfStr
	if p.GuardianID != nil {
		if g, err := repo.GuardianByID(r.Context(), h.Pool, *p.GuardianID, profID); err == nil {
			out["guardian"] = h.guardianToMap(g)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	profID, ok := professionalIDFrom(r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	var req PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid body"}`, http.StatusBadRequest)
		return
	}
	fullName, cpf, phone, fe := validatePerson(personInput{
		FullName:      req.FullName,
		CPF:           req.CPF,
		Phone:         req.Phone,
		Email:         req.Email,
		BirthDate:     req.BirthDate,
		birthRequired: true,
	}, time.Now())
	var guardianID *uuid.UUID
	if req.GuardianID != nil && strings.TrimSpace(*req.GuardianID) != "" {
		gid, err := uuid.Parse(strings.TrimSpace(*req.GuardianID))
		if err != nil {
			fe["guardian_id"] = "Responsável inválido"
		} else {
			guardianID = &gid
		}
	}
	if len(fe) > 0 {
		fe.write(w)
		return
	}
	if guardianID != nil {
		if _, err := repo.GuardianByID(r.Context(), h.Pool, *guardianID, profID); err != nil {
			http.Error(w, `{"error":"guardian not found"}`, http.StatusBadRequest)
			return
		}
	}
	p := &repo.Patient{
		ProfessionalID: profID,
		GuardianID:     guardianID,
		FullName:       fullName,
		BirthDate:      birthDateToISO(req.BirthDate),
		Gender:         optionalText(req.Gender),
		Schooling:      optionalText(req.Schooling),
		Handedness:     optionalText(req.Handedness),
		Notes:          optionalText(req.Notes),
	}
	if phone != "" {
		p.Phone = &phone
	}
	if s := strings.ToLower(strings.TrimSpace(req.Email)); s != "" {
		p.Email = &s
	}
	if cpf != "" {
		if _, err := repo.PatientIDByCPFHash(r.Context(), h.Pool, crypto.CPFHash(cpf)); err == nil {
			http.Error(w, `{"error":"CPF já cadastrado"}`, http.StatusConflict)
			return
		} else if !errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
			return
		}
		enc, nonce, keyVer, cpfHash, err := crypto.SealCPF(h.Keys, cpf)
		if err != nil {
			http.Error(w, `{"error":"encryption"}`, http.StatusInternalServerError)
			return
		}
		p.CPFEncrypted = enc
		p.CPFNonce = nonce
		p.CPFKeyVersion = &keyVer
		p.CPFHash = &cpfHash
	}
	if err := repo.CreatePatient(r.Context(), h.Pool, p); err != nil {
		if isUniqueViolation(err) {
			http.Error(w, `{"error":"CPF já cadastrado"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	h.Cache.DeletePrefix("patients:" + profID.String())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": p.ID.String()})
}

func (h *Handler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
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
	p, err := repo.PatientByID(r.Context(), h.Pool, patientID, profID)
	if err != nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	var req PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid body"}`, http.StatusBadRequest)
		return
	}
	fullName, cpf, phone, fe := validatePerson(personInput{
		FullName:      req.FullName,
		CPF:           req.CPF,
		Phone:         req.Phone,
		Email:         req.Email,
		BirthDate:     req.BirthDate,
		birthRequired: true,
	}, time.Now())
	var guardianID *uuid.UUID
	if req.GuardianID != nil && strings.TrimSpace(*req.GuardianID) != "" {
		gid, err := uuid.Parse(strings.TrimSpace(*req.GuardianID))
		if err != nil {
			fe["guardian_id"] = "Responsável inválido"
		} else {
			guardianID = &gid
		}
	}
	if len(fe) > 0 {
		fe.write(w)
		return
	}
	if guardianID != nil {
		if _, err := repo.GuardianByID(r.Context(), h.Pool, *guardianID, profID); err != nil {
			http.Error(w, `{"error":"guardian not found"}`, http.StatusBadRequest)
			return
		}
	}
	p.GuardianID = guardianID
	p.FullName = fullName
	p.BirthDate = birthDateToISO(req.BirthDate)
	p.Gender = optionalText(req.Gender)
	p.Schooling = optionalText(req.Schooling)
	p.Handedness = optionalText(req.Handedness)
	p.Notes = optionalText(req.Notes)
	if phone != "" {
		p.Phone = &phone
	} else {
		p.Phone = nil
	}
	if s := strings.ToLower(strings.TrimSpace(req.Email)); s != "" {
		p.Email = &s
	} else {
		p.Email = nil
	}
	if cpf != "" {
		newHash := crypto.CPFHash(cpf)
		if dup, err := repo.PatientIDByCPFHash(r.Context(), h.Pool, newHash); err == nil && dup != p.ID {
			http.Error(w, `{"error":"CPF já cadastrado"}`, http.StatusConflict)
			return
		}
		enc, nonce, keyVer, cpfHash, err := crypto.SealCPF(h.Keys, cpf)
		if err != nil {
			http.Error(w, `{"error":"encryption"}`, http.StatusInternalServerError)
			return
		}
		p.CPFEncrypted = enc
		p.CPFNonce = nonce
		p.CPFKeyVersion = &keyVer
		p.CPFHash = &cpfHash
	} else {
		// CPF de paciente é opcional: update sem CPF limpa as colunas.
		p.CPFEncrypted = nil
		p.CPFNonce = nil
		p.CPFKeyVersion = nil
		p.CPFHash = nil
	}
	if err := repo.UpdatePatient(r.Context(), h.Pool, p); err != nil {
		if isUniqueViolation(err) {
			http.Error(w, `{"error":"CPF já cadastrado"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	h.Cache.DeletePrefix("patients:" + profID.String())
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Paciente atualizado."})
}

func (h *Handler) DeletePatient(w http.ResponseWriter, r *http.Request) {
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
	if err := repo.SoftDeletePatient(r.Context(), h.Pool, patientID, profID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	h.Cache.DeletePrefix("patients:" + profID.String())
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Paciente removido."})
}

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

type GuardianRequest struct {
	FullName string `json:"full_name"`
	CPF      string `json:"cpf"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

func (h *Handler) ListGuardians(w http.ResponseWriter, r *http.Request) {
	profID, ok := professionalIDFrom(r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	limit, offset := pageParams(r)
	cacheKey := fmt.Sprintf("guardians:%s:%d:%d", profID, limit, offset)
	if b := h.Cache.Get(cacheKey); b != nil {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)
		return
	}
	total, err := repo.GuardiansCountByProfessional(r.Context(), h.Pool, profID)
	if err != nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	list, err := repo.GuardiansByProfessional(r.Context(), h.Pool, profID, limit, offset)
	if err != nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	type guardianResp struct {
		ID       string  `json:"id"`
		FullName string  `json:"full_name"`
		Phone    *string `json:"phone,omitempty"`
		Email    *string `json:"email,omitempty"`
	}
	out := make([]guardianResp, len(list))
	for i := range list {
		out[i] = guardianResp{
			ID:       list[i].ID.String(),
			FullName: list[i].FullName,
			Phone:    list[i].Phone,
			Email:    list[i].Email,
		}
	}
	body, _ := json.Marshal(map[string]interface{}{
		"guardians": out,
		"limit":     limit,
		"offset":    offset,
		"total":     total,
	})
	h.Cache.Set(cacheKey, body)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (h *Handler) GetGuardian(w http.ResponseWriter, r *http.Request) {
	profID, ok := professionalIDFrom(r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	guardianID, err := uuid.Parse(mux.Vars(r)["guardianId"])
	if err != nil {
		http.Error(w, `{"error":"invalid guardian_id"}`, http.StatusBadRequest)
		return
	}
	g, err := repo.GuardianByID(r.Context(), h.Pool, guardianID, profID)
	if err != nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.guardianToMap(g))
}

func (h *Handler) guardianToMap(g *repo.Guardian) map[string]interface{} {
	out := map[string]interface{}{
		"id":        g.ID.String(),
		"full_name": g.FullName,
		"phone":     g.Phone,
		"email":     g.Email,
	}
	if g.Phone != nil {
		out["phone_display"] = validate.FormatPhone(*g.Phone)
	}
	var cpfStr *string
	if g.CPFKeyVersion != nil && len(g.CPFEncrypted) > 0 && len(g.CPFNonce) > 0 {
		if dec, err := crypto.OpenCPF(h.Keys, g.CPFEncrypted, g.CPFNonce, *g.CPFKeyVersion); err == nil && dec != "" {
			cpfStr = &dec
			out["cpf_display"] = validate.FormatCPF(dec)
		}
	}
	out["cpf"] = cpfStr
	return out
}

func (h *Handler) CreateGuardian(w http.ResponseWriter, r *http.Request) {
	profID, ok := professionalIDFrom(r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	var req GuardianRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid body"}`, http.StatusBadRequest)
		return
	}
	fullName, cpf, phone, fe := validatePerson(personInput{
		FullName:    req.FullName,
		CPF:         req.CPF,
		Phone:       req.Phone,
		Email:       req.Email,
		cpfRequired: true,
	}, time.Now())
	if len(fe) > 0 {
		fe.write(w)
		return
	}
	if _, err := repo.GuardianIDByCPFHash(r.Context(), h.Pool, crypto.CPFHash(cpf)); err == nil {
		http.Error(w, `{"error":"CPF já cadastrado"}`, http.StatusConflict)
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" {
		if _, err := repo.GuardianIDByEmail(r.Context(), h.Pool, email); err == nil {
			http.Error(w, `{"error":"E-mail já cadastrado"}`, http.StatusConflict)
			return
		} else if !errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
			return
		}
	}
	enc, nonce, keyVer, cpfHash, err := crypto.SealCPF(h.Keys, cpf)
	if err != nil {
		http.Error(w, `{"error":"encryption"}`, http.StatusInternalServerError)
		return
	}
	g := &repo.Guardian{
		ProfessionalID: profID,
		FullName:       fullName,
		CPFEncrypted:   enc,
		CPFNonce:       nonce,
		CPFKeyVersion:  &keyVer,
		CPFHash:        &cpfHash,
	}
	if phone != "" {
		g.Phone = &phone
	}
	if s := strings.ToLower(strings.TrimSpace(req.Email)); s != "" {
		g.Email = &s
	}
	if err := repo.CreateGuardian(r.Context(), h.Pool, g); err != nil {
		if isUniqueViolation(err) {
			http.Error(w, `{"error":"CPF já cadastrado"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	h.Cache.DeletePrefix("guardians:" + profID.String())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": g.ID.String()})
}

func (h *Handler) UpdateGuardian(w http.ResponseWriter, r *http.Request) {
	profID, ok := professionalIDFrom(r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	guardianID, err := uuid.Parse(mux.Vars(r)["guardianId"])
	if err != nil {
		http.Error(w, `{"error":"invalid guardian_id"}`, http.StatusBadRequest)
		return
	}
	g, err := repo.GuardianByID(r.Context(), h.Pool, guardianID, profID)
	if err != nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	var req GuardianRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid body"}`, http.StatusBadRequest)
		return
	}
	fullName, cpf, phone, fe := validatePerson(personInput{
		FullName: req.FullName,
		CPF:      req.CPF,
		Phone:    req.Phone,
		Email:    req.Email,
	}, time.Now())
	if len(fe) > 0 {
		fe.write(w)
		return
	}
	g.FullName = fullName
	if phone != "" {
		g.Phone = &phone
	} else if strings.TrimSpace(req.Phone) == "" {
		g.Phone = nil
	}
	if s := strings.ToLower(strings.TrimSpace(req.Email)); s != "" {
		if dup, err := repo.GuardianIDByEmail(r.Context(), h.Pool, s); err == nil && dup != g.ID {
			http.Error(w, `{"error":"E-mail já cadastrado"}`, http.StatusConflict)
			return
		}
		g.Email = &s
	} else {
		g.Email = nil
	}
	// CPF só muda quando enviado; o repositório preserva as colunas quando
	// os campos ficam nil.
	if cpf != "" {
		newHash := crypto.CPFHash(cpf)
		if dup, err := repo.GuardianIDByCPFHash(r.Context(), h.Pool, newHash); err == nil && dup != g.ID {
			http.Error(w, `{"error":"CPF já cadastrado"}`, http.StatusConflict)
			return
		}
		enc, nonce, keyVer, cpfHash, err := crypto.SealCPF(h.Keys, cpf)
		if err != nil {
			http.Error(w, `{"error":"encryption"}`, http.StatusInternalServerError)
			return
		}
		g.CPFEncrypted = enc
		g.CPFNonce = nonce
		g.CPFKeyVersion = &keyVer
		g.CPFHash = &cpfHash
	} else {
		g.CPFEncrypted = nil
		g.CPFNonce = nil
		g.CPFKeyVersion = nil
		g.CPFHash = nil
	}
	if err := repo.UpdateGuardian(r.Context(), h.Pool, g); err != nil {
		if isUniqueViolation(err) {
			http.Error(w, `{"error":"CPF já cadastrado"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	h.Cache.DeletePrefix("guardians:" + profID.String())
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Responsável atualizado."})
}

func (h *Handler) DeleteGuardian(w http.ResponseWriter, r *http.Request) {
	profID, ok := professionalIDFrom(r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	guardianID, err := uuid.Parse(mux.Vars(r)["guardianId"])
	if err != nil {
		http.Error(w, `{"error":"invalid guardian_id"}`, http.StatusBadRequest)
		return
	}
	if err := repo.SoftDeleteGuardian(r.Context(), h.Pool, guardianID, profID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	h.Cache.DeletePrefix("guardians:" + profID.String())
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Responsável removido."})
}

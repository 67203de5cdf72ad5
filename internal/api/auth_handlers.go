package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ArturRossiJunior/Neurix/internal/auth"
	"github.com/ArturRossiJunior/Neurix/internal/repo"
	"github.com/ArturRossiJunior/Neurix/internal/validate"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	CRM      string `json:"crm,omitempty"`
	Role     string `json:"role"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid body"}`, http.StatusBadRequest)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		http.Error(w, `{"error":"email and password required"}`, http.StatusBadRequest)
		return
	}
	prof, err := repo.ProfessionalByEmail(r.Context(), h.Pool, req.Email)
	if err != nil {
		genericLoginError(w)
		return
	}
	if !auth.CheckPassword(prof.PasswordHash, req.Password) {
		genericLoginError(w)
		return
	}
	tok, err := auth.BuildJWT(h.Cfg.JWTSecret, prof.ID.String(), auth.RoleProfessional, 24*time.Hour)
	if err != nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(LoginResponse{
		Token:     tok,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		User: UserInfo{
			ID:       prof.ID.String(),
			Email:    prof.Email,
			FullName: prof.FullName,
			CRM:      prof.CRM,
			Role:     auth.RoleProfessional,
		},
	})
}

// genericLoginError mantém a mesma resposta para e-mail desconhecido e
// senha errada.
func genericLoginError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
}

type RegisterProfessionalRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	CRM      string `json:"crm"`
	Password string `json:"password"`
}

func (h *Handler) RegisterProfessional(w http.ResponseWriter, r *http.Request) {
	var req RegisterProfessionalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid body"}`, http.StatusBadRequest)
		return
	}
	fe := fieldErrors{}
	fullName, err := validate.FullName(req.FullName)
	if err != nil {
		fe["full_name"] = "Insira o nome completo"
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Email(email); err != nil {
		fe["email"] = "E-mail inválido"
	}
	crm := validate.FormatCRM(req.CRM)
	if err := validate.CRM(crm); err != nil {
		fe["crm"] = "CRM inválido (use DIGITOS/UF)"
	}
	if err := validate.Password(req.Password); err != nil {
		fe["password"] = err.Error()
	}
	if len(fe) > 0 {
		fe.write(w)
		return
	}
	if h.hashPassword == nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	// Pré-checa duplicatas para dar uma mensagem por campo; o índice único
	// ainda cobre a corrida via 23505.
	if _, err := repo.ProfessionalByEmail(r.Context(), h.Pool, email); err == nil {
		http.Error(w, `{"error":"e-mail já cadastrado"}`, http.StatusConflict)
		return
	}
	if _, err := repo.ProfessionalByCRM(r.Context(), h.Pool, crm); err == nil {
		http.Error(w, `{"error":"CRM já cadastrado"}`, http.StatusConflict)
		return
	}
	hash, err := h.hashPassword(req.Password)
	if err != nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	p := &repo.Professional{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		CRM:          crm,
	}
	if err := repo.CreateProfessional(r.Context(), h.Pool, p); err != nil {
		if isUniqueViolation(err) {
			http.Error(w, `{"error":"e-mail ou CRM já cadastrado"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": p.ID.String()})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	profID, ok := professionalIDFrom(r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	prof, err := repo.ProfessionalByID(r.Context(), h.Pool, profID)
	if err != nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(UserInfo{
		ID:       prof.ID.String(),
		Email:    prof.Email,
		FullName: prof.FullName,
		CRM:      prof.CRM,
		Role:     auth.RoleFrom(r.Context()),
	})
}

package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ArturRossiJunior/Neurix/internal/repo"
	"github.com/ArturRossiJunior/Neurix/internal/validate"
)

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ForgotPassword responde sempre a mesma mensagem, exista ou não o e-mail.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"Se o e-mail existir, você receberá instruções."}`))
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	const exp = time.Hour
	if prof, err := repo.ProfessionalByEmail(r.Context(), h.Pool, email); err == nil {
		tok, errTok := repo.CreatePasswordResetToken(r.Context(), h.Pool, prof.ID, exp)
		if errTok != nil {
			log.Printf("[password-reset] falha ao criar token para %s: %v", email, errTok)
		}
		if tok != "" {
			if h.sendPasswordResetEmail != nil {
				log.Printf("[password-reset] enviando para %s", email)
				if errSend := h.sendPasswordResetEmail(email, tok); errSend != nil {
					log.Printf("[password-reset] falha ao enviar e-mail para %s: %v", email, errSend)
				}
			} else {
				log.Printf("[password-reset] email disabled (would send to %s)", email)
			}
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"message":"Se o e-mail existir, você receberá instruções."}`))
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid body"}`, http.StatusBadRequest)
		return
	}
	if req.Token == "" {
		http.Error(w, `{"error":"token required"}`, http.StatusBadRequest)
		return
	}
	if err := validate.Password(req.NewPassword); err != nil {
		fe := fieldErrors{"new_password": err.Error()}
		fe.write(w)
		return
	}
	professionalID, err := repo.ConsumePasswordResetToken(r.Context(), h.Pool, req.Token)
	if err != nil {
		http.Error(w, `{"error":"invalid or expired token"}`, http.StatusBadRequest)
		return
	}
	if h.hashPassword == nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	hash, err := h.hashPassword(req.NewPassword)
	if err != nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	if err := repo.UpdateProfessionalPassword(r.Context(), h.Pool, professionalID, hash); err != nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"message":"Password changed successfully."}`))
}

package api

import (
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ArturRossiJunior/Neurix/internal/assessment"
	"github.com/ArturRossiJunior/Neurix/internal/auth"
	"github.com/ArturRossiJunior/Neurix/internal/cache"
	"github.com/ArturRossiJunior/Neurix/internal/config"
	"github.com/ArturRossiJunior/Neurix/internal/crypto"
)

type Handler struct {
	Pool  *pgxpool.Pool
	Cfg   *config.Config
	Cache *cache.TTL
	Runs  *assessment.Registry
	Keys  *crypto.Keyring

	// runMeta liga uma rodada em memória ao paciente e ao profissional que
	// a iniciou. O registry só conhece rodadas; o vínculo com o prontuário
	// fica aqui na camada HTTP. uuid.UUID -> runOwner. A varredura do
	// registry limpa as duas estruturas juntas (ver wireRunEviction).
	runMeta       sync.Map
	wireEvictOnce sync.Once

	hashPassword           func(string) (string, error)
	sendPasswordResetEmail func(to, token string) error
}

// wireRunEviction faz a saída de uma rodada do registry (varredura ou Drop)
// remover também o vínculo em runMeta, senão rodadas abandonadas deixariam
// entradas órfãs para sempre.
func (h *Handler) wireRunEviction() {
	h.wireEvictOnce.Do(func() {
		h.Runs.OnEvict(func(id uuid.UUID) { h.runMeta.Delete(id) })
	})
}

func (h *Handler) SetHashPassword(fn func(string) (string, error)) { h.hashPassword = fn }
func (h *Handler) SetSendPasswordResetEmail(fn func(to, token string) error) {
	h.sendPasswordResetEmail = fn
}

// professionalIDFrom extrai o UUID do profissional autenticado do JWT.
func professionalIDFrom(r *http.Request) (uuid.UUID, bool) {
	userID := auth.UserIDFrom(r.Context())
	if userID == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

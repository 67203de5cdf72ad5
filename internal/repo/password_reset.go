package repo

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreatePasswordResetToken(ctx context.Context, pool *pgxpool.Pool, professionalID uuid.UUID, exp time.Duration) (token string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token = hex.EncodeToString(b)
	expiresAt := time.Now().Add(exp)
	_, err = pool.Exec(ctx, `
		INSERT INTO password_reset_tokens (token, professional_id, expires_at)
		VALUES ($1, $2, $3)
	`, token, professionalID, expiresAt)
	return token, err
}

// ConsumePasswordResetToken marca o token como usado e devolve o
// profissional dono. Token inválido, expirado ou já usado resulta em
// pgx.ErrNoRows.
func ConsumePasswordResetToken(ctx context.Context, pool *pgxpool.Pool, token string) (uuid.UUID, error) {
	var professionalID uuid.UUID
	err := pool.QueryRow(ctx, `
		UPDATE password_reset_tokens SET used_at = now()
		WHERE token = $1 AND used_at IS NULL AND expires_at > now()
		RETURNING professional_id
	`, token).Scan(&professionalID)
	return professionalID, err
}

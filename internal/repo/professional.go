package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Professional struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	PasswordHash string
	// CRM canônico (DIGITOS/UF), ex.: 123456/SP.
	CRM string
}

func ProfessionalByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*Professional, error) {
	var p Professional
	err := pool.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash, crm
		FROM professionals WHERE email = $1 AND deleted_at IS NULL
	`, email).Scan(&p.ID, &p.FullName, &p.Email, &p.PasswordHash, &p.CRM)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func ProfessionalByID(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) (*Professional, error) {
	var p Professional
	err := pool.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash, crm
		FROM professionals WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&p.ID, &p.FullName, &p.Email, &p.PasswordHash, &p.CRM)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func ProfessionalByCRM(ctx context.Context, pool *pgxpool.Pool, crm string) (*Professional, error) {
	var p Professional
	err := pool.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash, crm
		FROM professionals WHERE crm = $1 AND deleted_at IS NULL
	`, crm).Scan(&p.ID, &p.FullName, &p.Email, &p.PasswordHash, &p.CRM)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func CreateProfessional(ctx context.Context, pool *pgxpool.Pool, p *Professional) error {
	return pool.QueryRow(ctx, `
		INSERT INTO professionals (full_name, email, password_hash, crm)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.FullName, p.Email, p.PasswordHash, p.CRM).Scan(&p.ID)
}

func UpdateProfessionalPassword(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID, passwordHash string) error {
	result, err := pool.Exec(ctx, `
		UPDATE professionals SET password_hash = $1, updated_at = now()
		WHERE id = $2 AND deleted_at IS NULL
	`, passwordHash, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

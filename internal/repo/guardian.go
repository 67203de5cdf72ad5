package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Guardian é o responsável legal por um ou mais pacientes. O CPF fica
// cifrado em repouso; cpf_hash serve só para busca de duplicidade.
type Guardian struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
	FullName       string
	Phone          *string
	Email          *string
	CPFEncrypted   []byte
	CPFNonce       []byte
	CPFKeyVersion  *string
	CPFHash        *string
}

func GuardiansByProfessional(ctx context.Context, pool *pgxpool.Pool, professionalID uuid.UUID, limit, offset int) ([]Guardian, error) {
	q := `
		SELECT id, professional_id, full_name, phone, email,
		       cpf_encrypted, cpf_nonce, cpf_key_version, cpf_hash
		FROM guardians
		WHERE professional_id = $1 AND deleted_at IS NULL
		ORDER BY full_name
	`
	args := []interface{}{professionalID}
	if limit > 0 {
		q += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Guardian
	for rows.Next() {
		var g Guardian
		if err := rows.Scan(&g.ID, &g.ProfessionalID, &g.FullName, &g.Phone, &g.Email,
			&g.CPFEncrypted, &g.CPFNonce, &g.CPFKeyVersion, &g.CPFHash); err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

func GuardiansCountByProfessional(ctx context.Context, pool *pgxpool.Pool, professionalID uuid.UUID) (int, error) {
	var n int
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM guardians WHERE professional_id = $1 AND deleted_at IS NULL
	`, professionalID).Scan(&n)
	return n, err
}

func GuardianByID(ctx context.Context, pool *pgxpool.Pool, id, professionalID uuid.UUID) (*Guardian, error) {
	var g Guardian
	err := pool.QueryRow(ctx, `
		SELECT id, professional_id, full_name, phone, email,
		       cpf_encrypted, cpf_nonce, cpf_key_version, cpf_hash
		FROM guardians
		WHERE id = $1 AND professional_id = $2 AND deleted_at IS NULL
	`, id, professionalID).Scan(&g.ID, &g.ProfessionalID, &g.FullName, &g.Phone, &g.Email,
		&g.CPFEncrypted, &g.CPFNonce, &g.CPFKeyVersion, &g.CPFHash)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GuardianIDByCPFHash procura um responsável não removido com o hash de CPF.
// Retorna pgx.ErrNoRows quando não há duplicata.
func GuardianIDByCPFHash(ctx context.Context, pool *pgxpool.Pool, cpfHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := pool.QueryRow(ctx, `
		SELECT id FROM guardians WHERE cpf_hash = $1 AND deleted_at IS NULL
	`, cpfHash).Scan(&id)
	return id, err
}

func GuardianIDByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (uuid.UUID, error) {
	var id uuid.UUID
	err := pool.QueryRow(ctx, `
		SELECT id FROM guardians WHERE email = $1 AND deleted_at IS NULL
	`, email).Scan(&id)
	return id, err
}

func CreateGuardian(ctx context.Context, pool *pgxpool.Pool, g *Guardian) error {
	return pool.QueryRow(ctx, `
		INSERT INTO guardians (professional_id, full_name, phone, email,
			cpf_encrypted, cpf_nonce, cpf_key_version, cpf_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, g.ProfessionalID, g.FullName, g.Phone, g.Email,
		g.CPFEncrypted, g.CPFNonce, g.CPFKeyVersion, g.CPFHash).Scan(&g.ID)
}

func UpdateGuardian(ctx context.Context, pool *pgxpool.Pool, g *Guardian) error {
	result, err := pool.Exec(ctx, `
		UPDATE guardians
		SET full_name = $1, phone = $2, email = $3,
		    cpf_encrypted = CASE WHEN $4::bytea IS NULL THEN cpf_encrypted ELSE $4 END,
		    cpf_nonce = CASE WHEN $5::bytea IS NULL THEN cpf_nonce ELSE $5 END,
		    cpf_key_version = CASE WHEN $6::text IS NULL THEN cpf_key_version ELSE $6 END,
		    cpf_hash = CASE WHEN $7::text IS NULL THEN cpf_hash ELSE $7 END,
		    updated_at = now()
		WHERE id = $8 AND professional_id = $9 AND deleted_at IS NULL
	`, g.FullName, g.Phone, g.Email, g.CPFEncrypted, g.CPFNonce, g.CPFKeyVersion, g.CPFHash,
		g.ID, g.ProfessionalID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func SoftDeleteGuardian(ctx context.Context, pool *pgxpool.Pool, id, professionalID uuid.UUID) error {
	result, err := pool.Exec(ctx, `
		UPDATE guardians SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND professional_id = $2 AND deleted_at IS NULL
	`, id, professionalID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Patient é a criança avaliada. Data de nascimento em ISO (YYYY-MM-DD);
// idade e idade detalhada são derivadas na camada de API.
type Patient struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
	GuardianID     *uuid.UUID
	FullName       string
	BirthDate      string
	Gender         *string
	Schooling      *string
	Handedness     *string
	Notes          *string
	Phone          *string
	Email          *string
	CPFEncrypted   []byte
	CPFNonce       []byte
	CPFKeyVersion  *string
	CPFHash        *string
}

func PatientsByProfessional(ctx context.Context, pool *pgxpool.Pool, professionalID uuid.UUID, limit, offset int) ([]Patient, error) {
	q := `
		SELECT id, professional_id, guardian_id, full_name,
		       to_char(birth_date, 'YYYY-MM-DD'), gender, schooling, handedness, notes,
		       phone, email,
		       cpf_encrypted, cpf_nonce, cpf_key_version, cpf_hash
		FROM patients
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
	var list []Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.ProfessionalID, &p.GuardianID, &p.FullName,
			&p.BirthDate, &p.Gender, &p.Schooling, &p.Handedness, &p.Notes,
			&p.Phone, &p.Email,
			&p.CPFEncrypted, &p.CPFNonce, &p.CPFKeyVersion, &p.CPFHash); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func PatientsCountByProfessional(ctx context.Context, pool *pgxpool.Pool, professionalID uuid.UUID) (int, error) {
	var n int
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM patients WHERE professional_id = $1 AND deleted_at IS NULL
	`, professionalID).Scan(&n)
	return n, err
}

func PatientByID(ctx context.Context, pool *pgxpool.Pool, id, professionalID uuid.UUID) (*Patient, error) {
	var p Patient
	err := pool.QueryRow(ctx, `
		SELECT id, professional_id, guardian_id, full_name,
		       to_char(birth_date, 'YYYY-MM-DD'), gender, schooling, handedness, notes,
		       phone, email,
		       cpf_encrypted, cpf_nonce, cpf_key_version, cpf_hash
		FROM patients
		WHERE id = $1 AND professional_id = $2 AND deleted_at IS NULL
	`, id, professionalID).Scan(&p.ID, &p.ProfessionalID, &p.GuardianID, &p.FullName,
		&p.BirthDate, &p.Gender, &p.Schooling, &p.Handedness, &p.Notes,
		&p.Phone, &p.Email,
		&p.CPFEncrypted, &p.CPFNonce, &p.CPFKeyVersion, &p.CPFHash)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PatientIDByCPFHash retorna pgx.ErrNoRows quando não há duplicata.
func PatientIDByCPFHash(ctx context.Context, pool *pgxpool.Pool, cpfHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := pool.QueryRow(ctx, `
		SELECT id FROM patients WHERE cpf_hash = $1 AND deleted_at IS NULL
	`, cpfHash).Scan(&id)
	return id, err
}

func CreatePatient(ctx context.Context, pool *pgxpool.Pool, p *Patient) error {
	return pool.QueryRow(ctx, `
		INSERT INTO patients (professional_id, guardian_id, full_name, birth_date,
			gender, schooling, handedness, notes,
			phone, email, cpf_encrypted, cpf_nonce, cpf_key_version, cpf_hash)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`, p.ProfessionalID, p.GuardianID, p.FullName, p.BirthDate,
		p.Gender, p.Schooling, p.Handedness, p.Notes,
		p.Phone, p.Email, p.CPFEncrypted, p.CPFNonce, p.CPFKeyVersion, p.CPFHash).Scan(&p.ID)
}

// UpdatePatient grava a representação inteira, inclusive as colunas de CPF:
// o CPF do paciente é opcional e campos nil removem o CPF armazenado.
func UpdatePatient(ctx context.Context, pool *pgxpool.Pool, p *Patient) error {
	result, err := pool.Exec(ctx, `
		UPDATE patients
		SET guardian_id = $1, full_name = $2, birth_date = $3::date,
		    gender = $4, schooling = $5, handedness = $6, notes = $7,
		    phone = $8, email = $9,
		    cpf_encrypted = $10, cpf_nonce = $11,
		    cpf_key_version = $12, cpf_hash = $13,
		    updated_at = now()
		WHERE id = $14 AND professional_id = $15 AND deleted_at IS NULL
	`, p.GuardianID, p.FullName, p.BirthDate,
		p.Gender, p.Schooling, p.Handedness, p.Notes,
		p.Phone, p.Email,
		p.CPFEncrypted, p.CPFNonce, p.CPFKeyVersion, p.CPFHash,
		p.ID, p.ProfessionalID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func SoftDeletePatient(ctx context.Context, pool *pgxpool.Pool, id, professionalID uuid.UUID) error {
	result, err := pool.Exec(ctx, `
		UPDATE patients SET deleted_at = now(), updated_at = now()
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

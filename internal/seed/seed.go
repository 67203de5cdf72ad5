package seed

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ArturRossiJunior/Neurix/internal/auth"
)

// Run garante que exista ao menos um profissional de desenvolvimento em
// bancos vazios. Em produção defina SEED_DISABLED=1.
func Run(ctx context.Context, pool *pgxpool.Pool) error {
	if os.Getenv("SEED_DISABLED") == "1" {
		return nil
	}
	var n int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM professionals").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := auth.HashPassword("ChangeMe123!")
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO professionals (email, password_hash, full_name, crm)
		VALUES ($1, $2, $3, $4)
	`, "dev@neurix.local", hash, "Profissional Dev", "123456/SP")
	if err != nil {
		return err
	}
	log.Printf("seed: profissional de desenvolvimento criado (dev@neurix.local)")
	return nil
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ArturRossiJunior/Neurix/internal/api"
	"github.com/ArturRossiJunior/Neurix/internal/assessment"
	"github.com/ArturRossiJunior/Neurix/internal/auth"
	"github.com/ArturRossiJunior/Neurix/internal/cache"
	"github.com/ArturRossiJunior/Neurix/internal/config"
	"github.com/ArturRossiJunior/Neurix/internal/crypto"
	"github.com/ArturRossiJunior/Neurix/internal/email"
	"github.com/ArturRossiJunior/Neurix/internal/middleware"
	"github.com/ArturRossiJunior/Neurix/internal/migrate"
	"github.com/ArturRossiJunior/Neurix/internal/seed"
)

func main() {
	cfg := config.Load()
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("config postgres: %v", err)
		}
		if cfg.DBMaxConns > 0 {
			poolConfig.MaxConns = int32(cfg.DBMaxConns)
		}
		if cfg.DBMinConns > 0 {
			poolConfig.MinConns = int32(cfg.DBMinConns)
		}
		pool, err = pgxpool.NewWithConfig(context.Background(), poolConfig)
		if err != nil {
			log.Fatalf("conexão postgres: %v", err)
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			log.Fatalf("ping postgres: %v", err)
		}
		if err := migrate.Run(context.Background(), pool, "migrations"); err != nil {
			log.Fatalf("migrations: %v", err)
		}
		if err := seed.Run(context.Background(), pool); err != nil {
			log.Printf("seed (ignored if already applied): %v", err)
		}
	}

	keys, err := crypto.LoadKeyring(cfg.DataEncryptionKeys, cfg.CurrentDataKeyVer)
	if err != nil {
		log.Fatalf("chaves de criptografia: %v", err)
	}

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	r.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if pool == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"no database"}`))
			return
		}
		if err := pool.Ping(context.Background()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"db unhealthy"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	h := &api.Handler{
		Pool:  pool,
		Cfg:   cfg,
		Cache: cache.New(30 * time.Second),
		Runs:  assessment.NewRegistry(time.Hour),
		Keys:  keys,
	}
	h.SetHashPassword(auth.HashPassword)
	if cfg.AppPublicURL != "" {
		mailCfg := &email.Config{
			Host:     cfg.SMTPHost,
			Port:     email.PortFromString(cfg.SMTPPort),
			User:     cfg.SMTPUser,
			Pass:     cfg.SMTPPass,
			FromName: cfg.SMTPFromName,
			FromAddr: cfg.SMTPFromEmail,
		}
		mailCfg.LogConfigSummary()
		h.SetSendPasswordResetEmail(func(to, token string) error {
			resetURL := cfg.AppPublicURL + "/reset-password?token=" + token
			return mailCfg.SendPasswordReset(to, resetURL)
		})
	} else {
		log.Printf("[email] Envio de e-mail desativado: APP_PUBLIC_URL vazio. Defina APP_PUBLIC_URL para habilitar reset de senha por e-mail.")
	}

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/auth/register", h.RegisterProfessional).Methods(http.MethodPost)
	apiRouter.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	apiRouter.HandleFunc("/auth/password/forgot", h.ForgotPassword).Methods(http.MethodPost)
	apiRouter.HandleFunc("/auth/password/reset", h.ResetPassword).Methods(http.MethodPost)
	// Ingestão de erros do frontend (sem PII). Auth é opcional: se houver JWT, enriquece o contexto.
	apiRouter.Handle("/errors/frontend", middleware.OptionalAuthMiddleware(cfg.JWTSecret)(http.HandlerFunc(h.IngestFrontendError))).Methods(http.MethodPost)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.RequireAuthMiddleware(cfg.JWTSecret))
	protected.HandleFunc("/me", h.Me).Methods(http.MethodGet)
	professional := middleware.RequireRole(auth.RoleProfessional, auth.RoleSuperAdmin)
	protected.Handle("/guardians", professional(http.HandlerFunc(h.ListGuardians))).Methods(http.MethodGet)
	protected.Handle("/guardians", professional(http.HandlerFunc(h.CreateGuardian))).Methods(http.MethodPost)
	protected.Handle("/guardians/{guardianId}", professional(http.HandlerFunc(h.GetGuardian))).Methods(http.MethodGet)
	protected.Handle("/guardians/{guardianId}", professional(http.HandlerFunc(h.UpdateGuardian))).Methods(http.MethodPut)
	protected.Handle("/guardians/{guardianId}", professional(http.HandlerFunc(h.DeleteGuardian))).Methods(http.MethodDelete)
	protected.Handle("/patients", professional(http.HandlerFunc(h.ListPatients))).Methods(http.MethodGet)
	protected.Handle("/patients", professional(http.HandlerFunc(h.CreatePatient))).Methods(http.MethodPost)
	protected.Handle("/patients/{patientId}", professional(http.HandlerFunc(h.GetPatient))).Methods(http.MethodGet)
	protected.Handle("/patients/{patientId}", professional(http.HandlerFunc(h.UpdatePatient))).Methods(http.MethodPut)
	protected.Handle("/patients/{patientId}", professional(http.HandlerFunc(h.DeletePatient))).Methods(http.MethodDelete)
	protected.Handle("/patients/{patientId}/assessments", professional(http.HandlerFunc(h.StartAssessment))).Methods(http.MethodPost)
	protected.Handle("/patients/{patientId}/results", professional(http.HandlerFunc(h.ListPatientResults))).Methods(http.MethodGet)
	protected.Handle("/assessments/{runId}", professional(http.HandlerFunc(h.GetAssessment))).Methods(http.MethodGet)
	protected.Handle("/assessments/{runId}/toggle", professional(http.HandlerFunc(h.ToggleTile))).Methods(http.MethodPost)
	protected.Handle("/assessments/{runId}/finish", professional(http.HandlerFunc(h.FinishAssessment))).Methods(http.MethodPost)
	protected.Handle("/results/{resultId}", professional(http.HandlerFunc(h.GetResult))).Methods(http.MethodGet)
	protected.Handle("/results/{resultId}/pdf", professional(http.HandlerFunc(h.GetResultPDF))).Methods(http.MethodGet)

	chain := middleware.Recover(middleware.RequestID(middleware.Timeout(time.Duration(cfg.RequestTimeoutSec) * time.Second)(middleware.CORS(cfg.CORSOrigins)(middleware.Gzip(r)))))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      chain,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("backend listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("backend stopped")
}

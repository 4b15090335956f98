package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "telemed/internal/adapter/http"
	"telemed/internal/adapter/objstore"
	"telemed/internal/adapter/postgres"
	"telemed/internal/app"
	"telemed/internal/config"
	"telemed/internal/pdf"
	"telemed/internal/token"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("config", "err", err)
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("db open", "err", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	tokens := token.NewService(cfg.JWTSecret)
	store := objstore.NewDisk(cfg.UploadDir, "/uploads/profile")
	renderer := pdf.New(cfg.PDFDir)

	doctorSvc := app.NewDoctorService(db, tokens)
	patientSvc := app.NewPatientService(db, tokens)
	consultationSvc := app.NewConsultationService(db, db)
	prescriptionSvc := app.NewPrescriptionService(db, db, db, db, renderer)
	uploadSvc := app.NewUploadService(store, db, db)

	var ssoSvc *app.SSOService
	if cfg.OIDC.Enabled() {
		ssoSvc, err = app.NewSSOService(context.Background(), cfg.OIDC, db, tokens)
		if err != nil {
			log.Error("sso init", "err", err)
			os.Exit(1)
		}
	}

	h := adapthttp.New(doctorSvc, patientSvc, consultationSvc, prescriptionSvc,
		uploadSvc, ssoSvc, tokens, cfg, log).Handler()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("serve", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", "err", err)
	}
}

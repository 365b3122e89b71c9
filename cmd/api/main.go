package main

import (
	"net/http"
	"os"
	"time"

	"pet-foster-homes/internal/adapters/auth/hstoken"
	"pet-foster-homes/internal/platform/logger"
	"pet-foster-homes/internal/router"
)

// @title Pet Foster Homes API
// @version 1.0
// @description Temporary pet housing marketplace: hosts publish homes, tutors request stays.
// @BasePath /
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	opts := router.Options{
		UploadsDir: os.Getenv("UPLOADS_DIR"),
		WebhookURL: os.Getenv("WEBHOOK_URL"),
		Log:        log,
	}

	// Sin SECRET_KEY => modo dev: sin tokens, identidad por X-Debug-*.
	if secret := os.Getenv("SECRET_KEY"); secret != "" {
		ttl := hstoken.DefaultTTL
		if v := os.Getenv("TOKEN_TTL"); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				ttl = d
			}
		}
		codec, err := hstoken.New([]byte(secret), ttl)
		if err != nil {
			log.Error("token codec init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.TokenIssuer = codec
		opts.TokenVerifier = codec
	} else {
		log.Warn("SECRET_KEY not set, running in dev auth mode", nil)
	}

	r := router.NewRouter(opts)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

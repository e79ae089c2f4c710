package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/clinicware/portal-client/internal/stub"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("stubserver starting up")

	port := getEnv("STUB_HTTP_PORT", "8080")
	secret := getEnv("STUB_JWT_SECRET", "dev-secret")
	seed := getInt("STUB_SEED_PATIENTS", 25)

	gofakeit.Seed(time.Now().UnixNano())

	store := stub.NewStore()
	if seed > 0 {
		store.Seed(seed)
		log.Printf("seeded %d fake patients", seed)
	}

	router := stub.NewRouter(stub.RouterConfig{
		Store:     store,
		JWTSecret: secret,
		Env:       getEnv("APP_ENV", "dev"),
		Version:   "dev",
	})

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%s (users: frontdesk/frontdesk123 nurse1/nurse123 drsmith/doctor123)", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Command folio-mockapi serves an in-memory portfolio API for offline use.
//
// Usage:
//
//	folio-mockapi -addr :8787 -demo
//
// With -demo, an account demo@itson.mx / demo123 and two sample projects are
// created at startup. Point the client at it with
// FOLIO_API_URL=http://localhost:8787/api/v1.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/itson-folio/folio/internal/mockapi"
	"github.com/itson-folio/folio/pkg/models"
)

func main() {
	addr := flag.String("addr", ":8787", "listen address")
	demo := flag.Bool("demo", false, "seed a demo account and projects")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	srv := mockapi.New()
	if *demo {
		seedDemo(srv)
		logger.Info("demo data seeded", "email", "demo@itson.mx", "password", "demo123")
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("mock portfolio API listening", "addr", *addr, "base_path", mockapi.BasePath)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func seedDemo(srv *mockapi.Server) {
	uid := srv.AddAccount("Demo", "demo@itson.mx", "000001", "demo123")
	folio, api := "Folio", "Portfolio API"
	srv.Seed(models.Project{
		Title:        &folio,
		Description:  "Terminal client for the **portfolio** service.",
		Technologies: models.StringList{"Go", "Cobra", "Lip Gloss"},
		Repository:   "https://github.com/itson-folio/folio",
		UserID:       uid,
	})
	srv.Seed(models.Project{
		Title:        &api,
		Description:  "REST backend.",
		Technologies: models.StringList{"Node", "Express"},
		Images:       models.StringList{"https://placehold.co/600x400.png"},
		UserID:       uid,
	})
}

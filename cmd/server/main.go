package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Rsxio/DomainScannerDnsVersion/internal/checker"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/config"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/dnsx"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/handlers"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/pacer"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfg := config.Default()
	// Interactive checks get a shorter politeness delay than a bulk scan.
	cfg.DelayMin = 200 * time.Millisecond
	cfg.DelayMax = time.Second
	cfg.LoadEnv()

	resolver := dnsx.New(cfg.DNSServer, cfg.Timeout)
	pace := pacer.NewRandom(cfg.DelayMin, cfg.DelayMax)
	chk := checker.NewGeneric(resolver, checker.NewHTTPProber(cfg.Timeout), pace, cfg.Retries)

	mux := http.NewServeMux()
	handlers.New(chk, cfg.Workers).Routes(mux)

	log.Printf("Server starting on http://localhost:%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal(err)
	}
}

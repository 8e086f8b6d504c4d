// Package handlers exposes the availability checkers over a small JSON API.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Rsxio/DomainScannerDnsVersion/internal/checker"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/models"
)

// bulkLimit caps a single bulk request; upstream services rate-limit hard.
const bulkLimit = 50

// Server serves check requests against one checker instance.
type Server struct {
	checker checker.AvailabilityChecker
	workers int
}

// New wires the handlers around a checker and a worker limit for bulk calls.
func New(c checker.AvailabilityChecker, workers int) *Server {
	return &Server{checker: c, workers: workers}
}

// Routes registers the API endpoints on a mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/check", s.Check)
	mux.HandleFunc("/check-bulk", s.CheckBulk)
	mux.HandleFunc("/healthz", s.Health)
}

type checkRequest struct {
	Domain  string   `json:"domain"`
	Domains []string `json:"domains"`
}

// Check classifies a single domain. A name without a dot gets ".com"
// appended.
func (s *Server) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	domain := normalize(req.Domain)
	if domain == "" {
		http.Error(w, "domain is required", http.StatusBadRequest)
		return
	}

	writeJSON(w, models.Result{
		Domain:    domain,
		Status:    s.checker.IsAvailable(r.Context(), domain),
		CheckedAt: time.Now(),
	})
}

// CheckBulk classifies up to bulkLimit domains concurrently.
func (s *Server) CheckBulk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var domains []string
	for _, d := range req.Domains {
		if d = normalize(d); d != "" {
			domains = append(domains, d)
		}
	}
	if len(domains) == 0 {
		http.Error(w, "no domains provided", http.StatusBadRequest)
		return
	}
	if len(domains) > bulkLimit {
		domains = domains[:bulkLimit]
	}

	pool := checker.NewPool(s.checker, s.workers)
	buckets := pool.CheckAll(r.Context(), domains)
	writeJSON(w, buckets)
}

// Health reports liveness.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func normalize(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return ""
	}
	if strings.ContainsAny(domain, "\r\n") {
		return ""
	}
	if !strings.Contains(domain, ".") {
		domain += ".com"
	}
	return domain
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

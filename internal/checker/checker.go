// Package checker classifies candidate domains as available, unavailable or
// error. Two checker variants share one contract: a generic DNS/HTTP layered
// check, and a DENIC-specific variant that escalates through the registry's
// authoritative WHOIS and web lookup.
package checker

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Rsxio/DomainScannerDnsVersion/internal/dnsx"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/models"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/pacer"
)

// AvailabilityChecker classifies a fully-qualified candidate domain.
// Implementations block on network I/O and deliberate pacing delays.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, domain string) models.Status
}

// Prober performs a lightweight connection attempt against a hostname.
// A nil error means something answered, i.e. the domain is in use.
type Prober interface {
	Probe(ctx context.Context, domain string) error
}

// HTTPProber issues a HEAD request to the bare hostname.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber returns a prober with the given per-request timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProber) Probe(ctx context.Context, domain string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, "http://"+domain, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Generic checks availability via DNS resolution with an optional HTTP
// cross-check. DNS alone reports false availables for registered domains
// without an A record; the probe catches part of that class without touching
// rate-limited WHOIS servers.
type Generic struct {
	resolver dnsx.Resolver
	prober   Prober // nil disables the HTTP refinement
	pace     pacer.Pacer
	retries  int
}

// NewGeneric wires a generic checker from its collaborators. A nil prober
// skips the HTTP refinement; retries below 1 are clamped to 1.
func NewGeneric(resolver dnsx.Resolver, prober Prober, pace pacer.Pacer, retries int) *Generic {
	if retries < 1 {
		retries = 1
	}
	return &Generic{
		resolver: resolver,
		prober:   prober,
		pace:     pace,
		retries:  retries,
	}
}

// IsAvailable runs the DNS-then-HTTP ladder, retrying transient failures up to
// the configured attempt count with a doubled pacing delay between attempts.
func (g *Generic) IsAvailable(ctx context.Context, domain string) models.Status {
	for attempt := 1; attempt <= g.retries; attempt++ {
		if err := g.pace.Pause(ctx); err != nil {
			return models.StatusError
		}

		res, err := g.resolver.Lookup(ctx, domain)
		if err != nil {
			if attempt < g.retries {
				log.Printf("checker: %s attempt %d/%d: %v, retrying", domain, attempt, g.retries, err)
				if err := g.pace.Backoff(ctx); err != nil {
					return models.StatusError
				}
				continue
			}
			log.Printf("checker: %s failed after %d attempts: %v", domain, g.retries, err)
			return models.StatusError
		}

		if res == dnsx.Resolved {
			return models.StatusUnavailable
		}
		return g.refine(ctx, domain)
	}
	return models.StatusError
}

// refine cross-checks a tentative available via HTTP. A successful
// connection overrides to unavailable (a DNS false negative). A refused or
// unreachable connection confirms availability, and any other probe error
// leaves the DNS tentative standing, so both classify available.
func (g *Generic) refine(ctx context.Context, domain string) models.Status {
	if g.prober == nil {
		return models.StatusAvailable
	}
	if err := g.prober.Probe(ctx, domain); err == nil {
		return models.StatusUnavailable
	}
	return models.StatusAvailable
}

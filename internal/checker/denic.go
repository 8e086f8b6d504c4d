package checker

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/likexian/whois"
	"golang.org/x/time/rate"

	"github.com/Rsxio/DomainScannerDnsVersion/internal/dnsx"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/models"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/pacer"
)

const (
	denicWhoisServer = "whois.denic.de"
	denicWebLookup   = "https://webwhois.denic.de/"
)

// DENIC WHOIS answers with "Status: free" for unregistered names and
// "Status: connect" for registered ones.
var denicFreeMarkers = []string{
	"status: free",
	"not found",
	"no entries found",
}

var denicTakenMarkers = []string{
	"status: connect",
	"registered",
}

// WhoisQuerier fetches the raw WHOIS response for a domain.
type WhoisQuerier interface {
	Query(domain string) (string, error)
}

// WebFetcher fetches the registry's public lookup page for a domain.
type WebFetcher interface {
	Fetch(ctx context.Context, domain string) (string, error)
}

type denicWhois struct {
	client *whois.Client
}

func (d denicWhois) Query(domain string) (string, error) {
	return d.client.Whois(domain, denicWhoisServer)
}

type denicWeb struct {
	client  *http.Client
	limiter *rate.Limiter
}

func (d denicWeb) Fetch(ctx context.Context, domain string) (string, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return "", err
	}
	u := denicWebLookup + "?lang=en&query=" + url.QueryEscape(domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Denic checks .de availability against the DENIC registry: known-registered
// fast path, then DNS, escalating to authoritative WHOIS and finally the web
// lookup service. Ambiguous or failed web lookups classify unavailable; the
// conservative default under-reports availability but never surfaces a taken
// name as free.
type Denic struct {
	known    *KnownRegistered
	resolver dnsx.Resolver
	whois    WhoisQuerier
	web      WebFetcher
	pace     pacer.Pacer
	retries  int
}

// NewDenic wires a DENIC checker from its collaborators. A nil known set
// starts empty; negative retries are clamped to zero.
func NewDenic(known *KnownRegistered, resolver dnsx.Resolver, wq WhoisQuerier, web WebFetcher, pace pacer.Pacer, retries int) *Denic {
	if known == nil {
		known = NewKnownRegistered(nil)
	}
	if retries < 0 {
		retries = 0
	}
	return &Denic{
		known:    known,
		resolver: resolver,
		whois:    wq,
		web:      web,
		pace:     pace,
		retries:  retries,
	}
}

// NewDefaultDenic builds a DENIC checker with the production WHOIS and web
// clients and the default known-registered seed.
func NewDefaultDenic(resolver dnsx.Resolver, pace pacer.Pacer, timeout time.Duration, retries int) *Denic {
	return NewDenic(
		DefaultKnownRegistered(),
		resolver,
		denicWhois{client: whois.NewClient().SetTimeout(timeout)},
		denicWeb{
			client:  &http.Client{Timeout: timeout},
			limiter: rate.NewLimiter(rate.Limit(1), 1),
		},
		pace,
		retries,
	)
}

// IsAvailable classifies a .de candidate. Resolution success always wins;
// WHOIS markers outrank the web lookup; DNS errors other than NXDOMAIN are
// not retried at this layer.
func (d *Denic) IsAvailable(ctx context.Context, domain string) models.Status {
	if d.known.Contains(domain) {
		return models.StatusUnavailable
	}

	if err := d.pace.Pause(ctx); err != nil {
		return models.StatusError
	}
	res, err := d.resolver.Lookup(ctx, domain)
	if err != nil {
		log.Printf("checker: %s dns: %v", domain, err)
		return models.StatusError
	}
	if res == dnsx.Resolved {
		return models.StatusUnavailable
	}
	return d.checkWhois(ctx, domain)
}

// checkWhois queries the authoritative WHOIS server, retrying transport
// failures. Responses matching neither marker set escalate to the web
// lookup, as do exhausted retries.
func (d *Denic) checkWhois(ctx context.Context, domain string) models.Status {
	for attempt := 0; attempt <= d.retries; attempt++ {
		if err := d.pace.Pause(ctx); err != nil {
			return models.StatusError
		}

		raw, err := d.whois.Query(domain)
		if err != nil {
			log.Printf("checker: %s whois attempt %d/%d: %v", domain, attempt+1, d.retries+1, err)
			continue
		}

		lower := strings.ToLower(raw)
		if containsAny(lower, denicFreeMarkers) {
			return models.StatusAvailable
		}
		if containsAny(lower, denicTakenMarkers) {
			return models.StatusUnavailable
		}
		break
	}
	return d.checkWeb(ctx, domain)
}

// checkWeb consults the DENIC web lookup. A confirmed registration is added
// to the known set so later candidates skip the network entirely.
func (d *Denic) checkWeb(ctx context.Context, domain string) models.Status {
	if err := d.pace.Pause(ctx); err != nil {
		return models.StatusError
	}

	body, err := d.web.Fetch(ctx, domain)
	if err != nil {
		log.Printf("checker: %s web lookup: %v", domain, err)
		return models.StatusUnavailable
	}

	if strings.Contains(body, "is already registered") {
		d.known.Add(domain)
		return models.StatusUnavailable
	}
	if strings.Contains(body, "is not registered") || strings.Contains(body, "is available") {
		return models.StatusAvailable
	}
	return models.StatusUnavailable
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

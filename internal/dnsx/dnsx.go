// Package dnsx resolves candidate domains against a configurable DNS server
// and distinguishes the NXDOMAIN answer class from transient failures.
package dnsx

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"
)

// DefaultServer is queried when no server is configured.
const DefaultServer = "8.8.8.8:53"

// Result is the classification of a lookup that completed without error.
type Result int

const (
	// Resolved means the name exists in the zone (registered).
	Resolved Result = iota
	// NameNotFound means the server answered NXDOMAIN.
	NameNotFound
)

// Resolver answers whether a domain name exists.
type Resolver interface {
	Lookup(ctx context.Context, domain string) (Result, error)
}

// Client queries a single DNS server over UDP.
type Client struct {
	client *dns.Client
	server string
}

// New returns a resolver against the given server ("host:port"); an empty
// server selects DefaultServer.
func New(server string, timeout time.Duration) *Client {
	if server == "" {
		server = DefaultServer
	}
	return &Client{
		client: &dns.Client{Timeout: timeout},
		server: server,
	}
}

// Lookup issues an A query. NOERROR classifies as Resolved even with an
// empty answer section: the name exists in the zone, which is the signal
// that matters for registration checks.
func (c *Client) Lookup(ctx context.Context, domain string) (Result, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), dns.TypeA)
	m.RecursionDesired = true

	resp, _, err := c.client.ExchangeContext(ctx, m, c.server)
	if err != nil {
		return 0, fmt.Errorf("dns query %s: %w", domain, err)
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
		return Resolved, nil
	case dns.RcodeNameError:
		return NameNotFound, nil
	default:
		return 0, fmt.Errorf("dns query %s: server returned %s", domain, dns.RcodeToString[resp.Rcode])
	}
}

package checker

import (
	"context"
	"errors"
	"net"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/Rsxio/DomainScannerDnsVersion/internal/dnsx"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/models"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/pacer"
)

type fakeResolver struct {
	mu    sync.Mutex
	calls int
	fn    func(domain string) (dnsx.Result, error)
}

func (f *fakeResolver) Lookup(_ context.Context, domain string) (dnsx.Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.fn(domain)
}

func (f *fakeResolver) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeProber struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeProber) Probe(context.Context, string) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.err
}

func resolveAs(res dnsx.Result) *fakeResolver {
	return &fakeResolver{fn: func(string) (dnsx.Result, error) { return res, nil }}
}

func TestGenericResolvedIsUnavailable(t *testing.T) {
	prober := &fakeProber{}
	g := NewGeneric(resolveAs(dnsx.Resolved), prober, pacer.Zero{}, 2)

	if got := g.IsAvailable(context.Background(), "example.com"); got != models.StatusUnavailable {
		t.Fatalf("got %s, want unavailable", got)
	}
	if prober.calls != 0 {
		t.Errorf("probe ran %d times for a resolved domain", prober.calls)
	}
}

func TestGenericNotFoundWithRefusedProbe(t *testing.T) {
	// DNS never finds the name and the HTTP probe is refused everywhere:
	// every candidate classifies available.
	refused := &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	g := NewGeneric(resolveAs(dnsx.NameNotFound), &fakeProber{err: refused}, pacer.Zero{}, 2)

	for _, domain := range []string{"aa.im", "bb.pw", "cc.gs"} {
		if got := g.IsAvailable(context.Background(), domain); got != models.StatusAvailable {
			t.Errorf("%s: got %s, want available", domain, got)
		}
	}
}

func TestGenericProbeSuccessOverrides(t *testing.T) {
	g := NewGeneric(resolveAs(dnsx.NameNotFound), &fakeProber{err: nil}, pacer.Zero{}, 2)

	if got := g.IsAvailable(context.Background(), "parked.com"); got != models.StatusUnavailable {
		t.Fatalf("got %s, want unavailable when the probe connects", got)
	}
}

func TestGenericProbeOtherErrorTentativeStands(t *testing.T) {
	g := NewGeneric(resolveAs(dnsx.NameNotFound), &fakeProber{err: errors.New("tls handshake failed")}, pacer.Zero{}, 2)

	if got := g.IsAvailable(context.Background(), "odd.com"); got != models.StatusAvailable {
		t.Fatalf("got %s, want the DNS tentative to stand", got)
	}
}

func TestGenericNoProber(t *testing.T) {
	g := NewGeneric(resolveAs(dnsx.NameNotFound), nil, pacer.Zero{}, 2)

	if got := g.IsAvailable(context.Background(), "bare.com"); got != models.StatusAvailable {
		t.Fatalf("got %s, want available without HTTP refinement", got)
	}
}

func TestGenericTransientExhausted(t *testing.T) {
	resolver := &fakeResolver{fn: func(string) (dnsx.Result, error) {
		return 0, errors.New("servfail")
	}}
	g := NewGeneric(resolver, nil, pacer.Zero{}, 3)

	if got := g.IsAvailable(context.Background(), "flaky.com"); got != models.StatusError {
		t.Fatalf("got %s, want error after exhausted retries", got)
	}
	if resolver.callCount() != 3 {
		t.Errorf("resolver called %d times, want 3", resolver.callCount())
	}
}

func TestGenericTransientThenSuccess(t *testing.T) {
	var n int
	resolver := &fakeResolver{fn: func(string) (dnsx.Result, error) {
		n++
		if n == 1 {
			return 0, errors.New("timeout")
		}
		return dnsx.Resolved, nil
	}}
	g := NewGeneric(resolver, nil, pacer.Zero{}, 3)

	if got := g.IsAvailable(context.Background(), "recovers.com"); got != models.StatusUnavailable {
		t.Fatalf("got %s, want unavailable after a retried transient", got)
	}
	if resolver.callCount() != 2 {
		t.Errorf("resolver called %d times, want 2", resolver.callCount())
	}
}

// statusByPrefix classifies deterministically from the first character.
type statusByPrefix struct{}

func (statusByPrefix) IsAvailable(_ context.Context, domain string) models.Status {
	switch {
	case strings.HasPrefix(domain, "a"):
		return models.StatusAvailable
	case strings.HasPrefix(domain, "e"):
		return models.StatusError
	default:
		return models.StatusUnavailable
	}
}

func TestPoolBucketsPartitionInput(t *testing.T) {
	domains := []string{
		"aa.im", "ab.im", "ba.im", "bb.im", "ea.im",
		"ac.im", "cc.im", "eb.im", "zz.im", "az.im",
	}
	pool := NewPool(statusByPrefix{}, 3)
	buckets := pool.CheckAll(context.Background(), domains)

	if buckets.Total() != len(domains) {
		t.Fatalf("collected %d outcomes for %d domains", buckets.Total(), len(domains))
	}

	var union []string
	union = append(union, buckets.Available...)
	union = append(union, buckets.Unavailable...)
	union = append(union, buckets.Error...)
	sort.Strings(union)

	want := append([]string(nil), domains...)
	sort.Strings(want)
	for i := range want {
		if union[i] != want[i] {
			t.Fatalf("bucket union %v does not match input %v", union, want)
		}
	}

	if len(buckets.Available) != 4 || len(buckets.Unavailable) != 4 || len(buckets.Error) != 2 {
		t.Errorf("bucket sizes %d/%d/%d, want 4/4/2",
			len(buckets.Available), len(buckets.Unavailable), len(buckets.Error))
	}
}

type panicky struct{}

func (panicky) IsAvailable(_ context.Context, domain string) models.Status {
	if domain == "boom.com" {
		panic("checker exploded")
	}
	return models.StatusUnavailable
}

func TestPoolRecoversWorkerPanic(t *testing.T) {
	pool := NewPool(panicky{}, 2)
	buckets := pool.CheckAll(context.Background(), []string{"ok.com", "boom.com", "fine.com"})

	if buckets.Total() != 3 {
		t.Fatalf("collected %d outcomes, want 3", buckets.Total())
	}
	if len(buckets.Error) != 1 || buckets.Error[0] != "boom.com" {
		t.Fatalf("error bucket %v, want [boom.com]", buckets.Error)
	}
}

func TestPoolOnResultSeesEveryOutcome(t *testing.T) {
	pool := NewPool(statusByPrefix{}, 2)
	var seen int
	pool.OnResult = func(models.Result) { seen++ }

	pool.CheckAll(context.Background(), []string{"aa.im", "bb.im", "ee.im"})
	if seen != 3 {
		t.Fatalf("OnResult fired %d times, want 3", seen)
	}
}

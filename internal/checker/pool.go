package checker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Rsxio/DomainScannerDnsVersion/internal/models"
)

// Pool drives a checker over a bounded number of concurrent workers and
// collects the outcomes into buckets.
type Pool struct {
	checker AvailabilityChecker
	workers int

	// OnResult, when set, is invoked from the collecting goroutine for
	// each completed check, in completion order.
	OnResult func(models.Result)
}

// NewPool returns a pool with the given worker limit (minimum 1).
func NewPool(c AvailabilityChecker, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{checker: c, workers: workers}
}

// CheckAll classifies every domain and returns the bucketed outcomes.
// Completion order decides bucket append order; submission order is not
// preserved. Each submitted domain lands in exactly one bucket, a panicking
// check counting as that domain's error outcome.
func (p *Pool) CheckAll(ctx context.Context, domains []string) models.Buckets {
	results := make(chan models.Result)
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for _, domain := range domains {
		wg.Add(1)
		go func(d string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results <- p.checkOne(ctx, d)
		}(domain)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var buckets models.Buckets
	for r := range results {
		if p.OnResult != nil {
			p.OnResult(r)
		}
		buckets.Add(r)
	}

	log.Printf("checker: %d checked, %d available, %d unavailable, %d errors",
		buckets.Total(), len(buckets.Available), len(buckets.Unavailable), len(buckets.Error))
	return buckets
}

// checkOne runs one classification to completion, converting a panic into
// an error outcome so one candidate can never abort its siblings.
func (p *Pool) checkOne(ctx context.Context, domain string) (r models.Result) {
	defer func() {
		if v := recover(); v != nil {
			log.Printf("checker: %s panicked: %v", domain, v)
			r = models.Result{Domain: domain, Status: models.StatusError, CheckedAt: time.Now()}
		}
	}()
	return models.Result{
		Domain:    domain,
		Status:    p.checker.IsAvailable(ctx, domain),
		CheckedAt: time.Now(),
	}
}

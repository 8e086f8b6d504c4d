// Package scanner drives full scans: per suffix it generates candidates,
// checks them in checkpointed slices through a worker pool, and persists the
// bucketed outcomes to flat text files.
package scanner

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Rsxio/DomainScannerDnsVersion/internal/checker"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/config"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/dnsx"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/generator"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/models"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/pacer"
)

// CheckerFactory selects the checker variant for a suffix.
type CheckerFactory func(suffix string) checker.AvailabilityChecker

// Scanner orchestrates generation, checking and persistence.
type Scanner struct {
	cfg     config.Config
	factory CheckerFactory

	// OnSuffixStart and OnResult let callers attach progress reporting.
	OnSuffixStart func(suffix string, total int)
	OnResult      func(models.Result)
}

// New builds a scanner with the production checker selection: the DENIC
// variant for .de, the generic DNS/HTTP variant for everything else.
func New(cfg config.Config) *Scanner {
	resolver := dnsx.New(cfg.DNSServer, cfg.Timeout)
	pace := pacer.NewRandom(cfg.DelayMin, cfg.DelayMax)

	return &Scanner{
		cfg: cfg,
		factory: func(suffix string) checker.AvailabilityChecker {
			if suffix == ".de" {
				return checker.NewDefaultDenic(resolver, pace, cfg.Timeout, cfg.Retries)
			}
			return checker.NewGeneric(resolver, checker.NewHTTPProber(cfg.Timeout), pace, cfg.Retries)
		},
	}
}

// NewWithFactory builds a scanner with a caller-supplied checker selection.
func NewWithFactory(cfg config.Config, factory CheckerFactory) *Scanner {
	return &Scanner{cfg: cfg, factory: factory}
}

// Run scans every configured suffix and returns the available domains per
// suffix (without the leading dot, mirroring the result file naming).
func (s *Scanner) Run(ctx context.Context) (map[string][]string, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.cfg.ResultsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}

	results := make(map[string][]string, len(s.cfg.Suffixes))
	for _, suffix := range s.cfg.Suffixes {
		available, err := s.scanSuffix(ctx, suffix)
		if err != nil {
			return results, err
		}
		results[strings.TrimPrefix(suffix, ".")] = available
	}
	return results, nil
}

func (s *Scanner) scanSuffix(ctx context.Context, suffix string) ([]string, error) {
	domains, err := generator.Generate(generator.Options{
		Mode:         generator.Mode(s.cfg.Mode),
		MinLength:    s.cfg.MinLength,
		MaxLength:    s.cfg.MaxLength,
		Suffix:       suffix,
		LeadingChars: s.cfg.StartChars,
		Limit:        s.cfg.Limit,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("scanner: generated %d %s candidates", len(domains), suffix)
	if s.OnSuffixStart != nil {
		s.OnSuffixStart(suffix, len(domains))
	}
	if len(domains) == 0 {
		return nil, nil
	}

	pool := checker.NewPool(s.factory(suffix), s.cfg.Workers)
	pool.OnResult = s.OnResult

	var all models.Buckets
	for start := 0; start < len(domains); start += s.cfg.CheckpointSize {
		if err := ctx.Err(); err != nil {
			return all.Available, err
		}
		end := start + s.cfg.CheckpointSize
		if end > len(domains) {
			end = len(domains)
		}
		log.Printf("scanner: checking %s candidates %d-%d of %d", suffix, start+1, end, len(domains))

		buckets := pool.CheckAll(ctx, domains[start:end])
		all.Available = append(all.Available, buckets.Available...)
		all.Unavailable = append(all.Unavailable, buckets.Unavailable...)
		all.Error = append(all.Error, buckets.Error...)

		// Checkpoint: rewrite the running available list after each slice
		// so an interrupted scan loses at most one slice of work.
		if err := writeLines(s.checkpointPath(suffix), all.Available); err != nil {
			return all.Available, err
		}
		if len(all.Error) > 0 {
			if err := writeLines(s.bucketPath("error", suffix, false), all.Error); err != nil {
				return all.Available, err
			}
		}
	}

	for bucket, domains := range map[string][]string{
		"available":   all.Available,
		"unavailable": all.Unavailable,
		"error":       all.Error,
	} {
		if err := writeLines(s.bucketPath(bucket, suffix, true), domains); err != nil {
			return all.Available, err
		}
	}
	log.Printf("scanner: %s done, %d available, %d unavailable, %d errors",
		suffix, len(all.Available), len(all.Unavailable), len(all.Error))
	return all.Available, nil
}

// fileTag encodes mode, length range and leading-char filter the way result
// consumers expect: letters_2-3 or letters_2-3_start_ab.
func (s *Scanner) fileTag() string {
	tag := fmt.Sprintf("%s_%d-%d", s.cfg.Mode, s.cfg.MinLength, s.cfg.MaxLength)
	if s.cfg.StartChars != "" {
		tag += "_start_" + s.cfg.StartChars
	}
	return tag
}

func (s *Scanner) checkpointPath(suffix string) string {
	name := fmt.Sprintf("checkpoint_%s_%s.txt", strings.TrimPrefix(suffix, "."), s.fileTag())
	return filepath.Join(s.cfg.ResultsDir, name)
}

func (s *Scanner) bucketPath(bucket, suffix string, stamped bool) string {
	name := fmt.Sprintf("%s_%s_%s", bucket, strings.TrimPrefix(suffix, "."), s.fileTag())
	if stamped {
		name += "_" + time.Now().Format("20060102_150405")
	}
	return filepath.Join(s.cfg.ResultsDir, name+".txt")
}

func writeLines(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

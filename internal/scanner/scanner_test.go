package scanner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/Rsxio/DomainScannerDnsVersion/internal/checker"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/config"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/models"
)

// vowelChecker marks vowel-led labels available, "x"-led labels as errors.
type vowelChecker struct{}

func (vowelChecker) IsAvailable(_ context.Context, domain string) models.Status {
	switch domain[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return models.StatusAvailable
	case 'x':
		return models.StatusError
	default:
		return models.StatusUnavailable
	}
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Mode = "letters"
	cfg.MinLength = 1
	cfg.MaxLength = 1
	cfg.Suffixes = []string{".im"}
	cfg.Workers = 2
	cfg.CheckpointSize = 10
	cfg.ResultsDir = t.TempDir()
	return cfg
}

func TestRunPersistsBuckets(t *testing.T) {
	cfg := testConfig(t)
	s := NewWithFactory(cfg, func(string) checker.AvailabilityChecker {
		return vowelChecker{}
	})

	results, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	available := results["im"]
	sort.Strings(available)
	want := []string{"a.im", "e.im", "i.im", "o.im", "u.im"}
	if strings.Join(available, ",") != strings.Join(want, ",") {
		t.Fatalf("available = %v, want %v", available, want)
	}

	// Checkpoint file carries the full available list without timestamp.
	cp := filepath.Join(cfg.ResultsDir, "checkpoint_im_letters_1-1.txt")
	lines := readLines(t, cp)
	sort.Strings(lines)
	if strings.Join(lines, ",") != strings.Join(want, ",") {
		t.Fatalf("checkpoint %v, want %v", lines, want)
	}

	for bucket, count := range map[string]int{
		"available_im_letters_1-1_*.txt":   5,
		"unavailable_im_letters_1-1_*.txt": 20,
		"error_im_letters_1-1_*.txt":       1,
	} {
		matches, err := filepath.Glob(filepath.Join(cfg.ResultsDir, bucket))
		if err != nil || len(matches) == 0 {
			t.Fatalf("no result file for %s", bucket)
		}
		if got := len(readLines(t, matches[0])); got != count {
			t.Errorf("%s holds %d lines, want %d", bucket, got, count)
		}
	}
}

func TestRunChecksEverySlice(t *testing.T) {
	cfg := testConfig(t)
	cfg.CheckpointSize = 4 // 26 candidates across 7 slices

	seen := map[string]bool{}
	s := NewWithFactory(cfg, func(string) checker.AvailabilityChecker {
		return vowelChecker{}
	})
	// OnResult runs on the pool's collecting goroutine, one call at a time.
	s.OnResult = func(r models.Result) {
		seen[r.Domain] = true
	}

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 26 {
		t.Fatalf("saw %d distinct candidates, want 26", len(seen))
	}
}

func TestRunStartCharsInFilenames(t *testing.T) {
	cfg := testConfig(t)
	cfg.StartChars = "ae"
	s := NewWithFactory(cfg, func(string) checker.AvailabilityChecker {
		return vowelChecker{}
	})

	results, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(results["im"]) != 2 {
		t.Fatalf("available = %v, want a.im and e.im", results["im"])
	}

	cp := filepath.Join(cfg.ResultsDir, "checkpoint_im_letters_1-1_start_ae.txt")
	if _, err := os.Stat(cp); err != nil {
		t.Fatalf("checkpoint with start-chars tag missing: %v", err)
	}
}

func TestRunUnknownModeFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.Mode = "hex"
	s := NewWithFactory(cfg, func(string) checker.AvailabilityChecker {
		return vowelChecker{}
	})

	if _, err := s.Run(context.Background()); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

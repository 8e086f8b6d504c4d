package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/Rsxio/DomainScannerDnsVersion/internal/config"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/models"
	"github.com/Rsxio/DomainScannerDnsVersion/internal/scanner"
)

func main() {
	cfg := config.Default()
	cfg.LoadEnv()

	mode := flag.String("mode", cfg.Mode, "generation mode: letters, digits or alphanumeric")
	minLength := flag.Int("min-length", cfg.MinLength, "minimum label length (suffix excluded)")
	maxLength := flag.Int("max-length", cfg.MaxLength, "maximum label length (suffix excluded)")
	tlds := flag.String("tlds", strings.Join(cfg.Suffixes, ","), "comma-separated suffixes to scan")
	limit := flag.Int("limit", 0, "cap on generated candidates per suffix, 0 for all")
	workers := flag.Int("workers", cfg.Workers, "concurrent check workers")
	delayMin := flag.Duration("delay-min", cfg.DelayMin, "minimum delay before each query")
	delayMax := flag.Duration("delay-max", cfg.DelayMax, "maximum delay before each query")
	timeout := flag.Duration("timeout", cfg.Timeout, "DNS/WHOIS/HTTP query timeout")
	retries := flag.Int("retries", cfg.Retries, "retry count for transient failures")
	checkpoint := flag.Int("checkpoint-size", cfg.CheckpointSize, "candidates checked per checkpoint slice")
	resultsDir := flag.String("results-dir", cfg.ResultsDir, "directory for result files")
	startChars := flag.String("start-chars", "", "restrict labels to these leading characters")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	cfg.Mode = *mode
	cfg.MinLength = *minLength
	cfg.MaxLength = *maxLength
	cfg.Suffixes = splitSuffixes(*tlds)
	cfg.Limit = *limit
	cfg.Workers = *workers
	cfg.DelayMin = *delayMin
	cfg.DelayMax = *delayMax
	cfg.Timeout = *timeout
	cfg.Retries = *retries
	cfg.CheckpointSize = *checkpoint
	cfg.ResultsDir = *resultsDir
	cfg.StartChars = *startChars

	if *noColor {
		color.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Scanning %s labels of length %d-%d across %s\n",
		cfg.Mode, cfg.MinLength, cfg.MaxLength, strings.Join(cfg.Suffixes, ", "))
	if cfg.StartChars != "" {
		fmt.Printf("Leading characters restricted to %q\n", cfg.StartChars)
	}
	fmt.Printf("Workers: %d, delay %s-%s, timeout %s, retries %d\n",
		cfg.Workers, cfg.DelayMin, cfg.DelayMax, cfg.Timeout, cfg.Retries)
	fmt.Printf("Results directory: %s\n", cfg.ResultsDir)

	s := scanner.New(cfg)

	var bar *progressbar.ProgressBar
	s.OnSuffixStart = func(suffix string, total int) {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Checking "+suffix),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	s.OnResult = func(r models.Result) {
		if bar != nil {
			bar.Add(1)
		}
		if r.Status == models.StatusAvailable {
			fmt.Printf("%s %s\n", color.GreenString("available"), r.Domain)
		}
	}

	start := time.Now()
	results, err := s.Run(ctx)
	if err != nil {
		log.Fatalf("scan failed: %v", err)
	}

	fmt.Printf("\nScan finished in %s\n", time.Since(start).Round(time.Second))
	for tld, domains := range results {
		line := fmt.Sprintf(".%s: %d available", tld, len(domains))
		if len(domains) > 0 {
			fmt.Println(color.GreenString(line))
		} else {
			fmt.Println(line)
		}
	}
}

func splitSuffixes(csv string) []string {
	var suffixes []string
	for _, s := range strings.Split(csv, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !strings.HasPrefix(s, ".") {
			s = "." + s
		}
		suffixes = append(suffixes, s)
	}
	return suffixes
}

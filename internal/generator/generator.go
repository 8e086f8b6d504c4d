// Package generator enumerates candidate domain names for availability
// scanning: exhaustive character combinations over a chosen alphabet,
// filtered against per-suffix registry rules.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Mode selects the character set used for enumeration.
type Mode string

const (
	ModeLetters      Mode = "letters"
	ModeDigits       Mode = "digits"
	ModeAlphanumeric Mode = "alphanumeric"
)

// ErrUnknownMode is returned for generation modes outside the supported set.
var ErrUnknownMode = errors.New("unknown generation mode")

const (
	letters = "abcdefghijklmnopqrstuvwxyz"
	digits  = "0123456789"
)

// DefaultSuffixes is the suffix list scanned when none is given.
var DefaultSuffixes = []string{".im", ".pw", ".gs", ".com", ".de", ".ml"}

// Options controls a single generation run.
type Options struct {
	Mode      Mode
	MinLength int
	MaxLength int

	// Suffix restricts generation to one suffix. When empty, every suffix
	// in Suffixes (or DefaultSuffixes) is combined with every label.
	Suffix   string
	Suffixes []string

	// LeadingChars restricts the first character of each label to the
	// intersection of this set with the active alphabet. Characters
	// outside the alphabet are ignored.
	LeadingChars string

	// Shuffle permutes the complete result before Limit is applied.
	Shuffle bool
	// Limit truncates the result. Zero means unlimited.
	Limit int

	// Rules defaults to DefaultRules when nil.
	Rules RuleSet
	// Rand defaults to the global source when nil.
	Rand *rand.Rand
}

func alphabet(mode Mode) (string, error) {
	switch mode {
	case ModeLetters:
		return letters, nil
	case ModeDigits:
		return digits, nil
	case ModeAlphanumeric:
		return letters + digits, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// Generate enumerates candidate domains per the options. Labels are produced
// in lexicographic order over the alphabet, lengths ascending, each label
// combined with each target suffix and filtered through the rule set.
func Generate(opts Options) ([]string, error) {
	chars, err := alphabet(opts.Mode)
	if err != nil {
		return nil, err
	}

	suffixes := opts.Suffixes
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}
	if opts.Suffix != "" {
		suffixes = []string{opts.Suffix}
	}
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}

	leading := chars
	if opts.LeadingChars != "" {
		leading = intersect(opts.LeadingChars, chars)
	}

	var domains []string
	for length := opts.MinLength; length <= opts.MaxLength; length++ {
		for _, label := range enumerate(chars, leading, length) {
			for _, suffix := range suffixes {
				if rules.ValidLabel(label, suffix) {
					domains = append(domains, label+suffix)
				}
			}
		}
	}

	if opts.Shuffle {
		shuffle(domains, opts.Rand)
	}
	if opts.Limit > 0 && len(domains) > opts.Limit {
		domains = domains[:opts.Limit]
	}
	return domains, nil
}

func shuffle(domains []string, rnd *rand.Rand) {
	swap := func(i, j int) {
		domains[i], domains[j] = domains[j], domains[i]
	}
	if rnd == nil {
		rand.Shuffle(len(domains), swap)
	} else {
		rnd.Shuffle(len(domains), swap)
	}
}

// GenerateSample draws a uniform random subset of at most sampleSize
// candidates from the unrestricted enumeration. When the full enumeration
// fits within sampleSize it is returned whole.
func GenerateSample(opts Options, sampleSize int) ([]string, error) {
	opts.Limit = 0
	opts.Shuffle = false
	domains, err := Generate(opts)
	if err != nil {
		return nil, err
	}
	if len(domains) <= sampleSize {
		return domains, nil
	}
	shuffle(domains, opts.Rand)
	return domains[:sampleSize], nil
}

// enumerate yields every length-sized combination of chars in lexicographic
// order, with the first position drawn from leading only.
func enumerate(chars, leading string, length int) []string {
	if length <= 0 || leading == "" {
		return nil
	}

	count := len(leading)
	for i := 1; i < length; i++ {
		count *= len(chars)
	}

	labels := make([]string, 0, count)
	buf := make([]byte, length)
	idx := make([]int, length)
	for {
		buf[0] = leading[idx[0]]
		for i := 1; i < length; i++ {
			buf[i] = chars[idx[i]]
		}
		labels = append(labels, string(buf))

		// Odometer increment, least significant position last.
		pos := length - 1
		for pos >= 0 {
			idx[pos]++
			limit := len(chars)
			if pos == 0 {
				limit = len(leading)
			}
			if idx[pos] < limit {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return labels
		}
	}
}

// intersect keeps the characters of set that occur in chars, preserving the
// canonical alphabet order and dropping duplicates.
func intersect(set, chars string) string {
	var b strings.Builder
	for i := 0; i < len(chars); i++ {
		if strings.IndexByte(set, chars[i]) >= 0 {
			b.WriteByte(chars[i])
		}
	}
	return b.String()
}

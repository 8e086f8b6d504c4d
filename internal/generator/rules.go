package generator

import "strings"

// Rule describes registry restrictions on the label part of a domain
// (the suffix is never included when the rule is applied).
type Rule struct {
	MinLength        int
	MaxLength        int
	NoLeadingHyphen  bool
	NoTrailingHyphen bool
	// NoHyphenPos34 rejects labels whose 3rd and 4th characters are both
	// hyphens (the IDN ACE prefix position, reserved by several registries).
	NoHyphenPos34 bool
}

// RuleSet maps a suffix (with leading dot) to its registry restrictions.
// Suffixes without an entry are unrestricted.
type RuleSet map[string]Rule

// DefaultRules returns the restrictions for the suffixes whose registries
// reserve certain label shapes.
func DefaultRules() RuleSet {
	return RuleSet{
		".de": {
			MinLength:        1,
			MaxLength:        63,
			NoLeadingHyphen:  true,
			NoTrailingHyphen: true,
			NoHyphenPos34:    true,
		},
		".ml": {
			MinLength:        3,
			MaxLength:        63,
			NoLeadingHyphen:  true,
			NoTrailingHyphen: true,
		},
	}
}

// ValidLabel reports whether a label is acceptable for the given suffix.
func (rs RuleSet) ValidLabel(label, suffix string) bool {
	rule, ok := rs[suffix]
	if !ok {
		return true
	}

	min, max := rule.MinLength, rule.MaxLength
	if min == 0 {
		min = 1
	}
	if max == 0 {
		max = 63
	}
	if len(label) < min || len(label) > max {
		return false
	}
	if rule.NoLeadingHyphen && strings.HasPrefix(label, "-") {
		return false
	}
	if rule.NoTrailingHyphen && strings.HasSuffix(label, "-") {
		return false
	}
	if rule.NoHyphenPos34 && len(label) >= 4 && label[2] == '-' && label[3] == '-' {
		return false
	}
	return true
}

// Valid reports whether a full domain passes the rule set. The suffix is
// identified by the longest matching rule entry; domains with no matching
// entry are always valid.
func (rs RuleSet) Valid(domain string) bool {
	match := ""
	for suffix := range rs {
		if strings.HasSuffix(domain, suffix) && len(suffix) > len(match) {
			match = suffix
		}
	}
	if match == "" {
		return true
	}
	return rs.ValidLabel(strings.TrimSuffix(domain, match), match)
}

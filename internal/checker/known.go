package checker

import (
	"github.com/patrickmn/go-cache"
)

// KnownRegistered is an add-only set of domains confirmed registered,
// consulted before any network call. Entries never expire; the set lives for
// the process duration and is safe for concurrent use.
type KnownRegistered struct {
	entries *cache.Cache
}

// NewKnownRegistered builds a set from the given seed domains.
func NewKnownRegistered(seed []string) *KnownRegistered {
	k := &KnownRegistered{entries: cache.New(cache.NoExpiration, 0)}
	for _, domain := range seed {
		k.Add(domain)
	}
	return k
}

// DefaultKnownRegistered seeds the set for .de: every two-letter label plus
// the short domains confirmed registered against DENIC. Practically all
// two-letter .de names have been taken for years, so skipping their lookups
// saves a WHOIS round trip each.
func DefaultKnownRegistered() *KnownRegistered {
	k := NewKnownRegistered([]string{"kt.de", "go.de", "uh.de"})
	for a := byte('a'); a <= 'z'; a++ {
		for b := byte('a'); b <= 'z'; b++ {
			k.Add(string([]byte{a, b}) + ".de")
		}
	}
	return k
}

// Contains reports membership.
func (k *KnownRegistered) Contains(domain string) bool {
	_, ok := k.entries.Get(domain)
	return ok
}

// Add records a domain as registered. Concurrent adds are safe; entries are
// never removed.
func (k *KnownRegistered) Add(domain string) {
	k.entries.Set(domain, struct{}{}, cache.NoExpiration)
}

// Len returns the number of recorded domains.
func (k *KnownRegistered) Len() int {
	return k.entries.ItemCount()
}

package models

import "time"

// Status represents the availability classification of a domain
type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusError       Status = "error"
)

// Result holds the result of a single domain check
type Result struct {
	Domain    string    `json:"domain"`
	Status    Status    `json:"status"`
	CheckedAt time.Time `json:"checked_at"`
}

// Buckets collects check results grouped by classification
type Buckets struct {
	Available   []string `json:"available"`
	Unavailable []string `json:"unavailable"`
	Error       []string `json:"error"`
}

// Add files a result into its bucket. Unknown statuses count as errors so
// that every submitted domain lands in exactly one bucket.
func (b *Buckets) Add(r Result) {
	switch r.Status {
	case StatusAvailable:
		b.Available = append(b.Available, r.Domain)
	case StatusUnavailable:
		b.Unavailable = append(b.Unavailable, r.Domain)
	default:
		b.Error = append(b.Error, r.Domain)
	}
}

// Total returns the number of collected results across all buckets
func (b *Buckets) Total() int {
	return len(b.Available) + len(b.Unavailable) + len(b.Error)
}

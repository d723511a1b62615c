package models

import (
	"time"
)

type SearchKind string

const (
	SearchKindPhone SearchKind = "phone"
	SearchKindIP    SearchKind = "ip"
)

// Unknown is the placeholder stored or returned whenever a best-effort
// sub-lookup (requester address, carrier name, geocoding) has no answer.
const Unknown = "Unknown"

// SearchEvent is one entry of the merged recent-activity feed. SearchTerm is
// the masked number for phone events and the resolved address for IP events.
type SearchEvent struct {
	Kind       SearchKind `json:"kind"`
	SearchTerm string     `json:"search_term"`
	Country    string     `json:"country"`
	OccurredAt time.Time  `json:"occurred_at"`
}

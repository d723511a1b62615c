package models

import (
	"time"
)

// PhoneSearch is one recorded phone lookup. Rows are append-only; the raw
// number is masked before it reaches the store and the full number is never
// recoverable from a stored row.
type PhoneSearch struct {
	ID               int64     `db:"id" json:"id"`
	MaskedNumber     string    `db:"masked_number" json:"masked_number"`
	DetectedRegion   string    `db:"detected_region" json:"detected_region"`
	DetectedOperator string    `db:"detected_operator" json:"detected_operator"`
	ManualOperator   *string   `db:"manual_operator" json:"manual_operator,omitempty"`
	RequesterIP      string    `db:"requester_ip" json:"requester_ip"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

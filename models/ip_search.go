package models

import (
	"time"
)

type LookupMode string

const (
	LookupModeAutoDetect LookupMode = "auto_detect"
	LookupModeCustomIP   LookupMode = "custom"
)

// IPSearch is one recorded IP lookup. QueriedIP is always the address the
// provider reported back, not the literal user input, so stored rows reflect
// whatever normalization the provider applied.
type IPSearch struct {
	ID          int64      `db:"id" json:"id"`
	QueriedIP   string     `db:"queried_ip" json:"queried_ip"`
	Country     string     `db:"country" json:"country"`
	Region      string     `db:"region" json:"region"`
	City        string     `db:"city" json:"city"`
	ISP         string     `db:"isp" json:"isp"`
	Latitude    *float64   `db:"latitude" json:"latitude,omitempty"`
	Longitude   *float64   `db:"longitude" json:"longitude,omitempty"`
	LookupMode  LookupMode `db:"lookup_mode" json:"lookup_mode"`
	RequesterIP string     `db:"requester_ip" json:"requester_ip"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

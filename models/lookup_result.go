package models

// PhoneAnswer carries both operator resolutions of a phone lookup. The
// detected operator reflects the number's original numbering-plan assignment,
// not its current porting status, and is surfaced unchanged even when a
// manual operator takes precedence.
type PhoneAnswer struct {
	Region            string `json:"region"`
	DetectedOperator  string `json:"detected_operator"`
	EffectiveOperator string `json:"effective_operator"`
}

// IPAnswer carries the provider-reported geolocation fields for one address.
// Coordinates are optional; every other field defaults to Unknown when the
// provider omits it.
type IPAnswer struct {
	IP        string   `json:"ip"`
	Country   string   `json:"country"`
	Region    string   `json:"region"`
	City      string   `json:"city"`
	Postal    string   `json:"postal"`
	Timezone  string   `json:"timezone"`
	Org       string   `json:"org"`
	ASN       string   `json:"asn"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// LookupResult is what a lookup flow hands back to the presentation layer.
// Exactly one of Phone or IP is set. Warning is non-empty when the lookup
// itself succeeded but the history write failed.
type LookupResult struct {
	Phone   *PhoneAnswer `json:"phone,omitempty"`
	IP      *IPAnswer    `json:"ip,omitempty"`
	Warning string       `json:"warning,omitempty"`
}

package iplookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"lookup-tracker/models"
)

var (
	// ErrInvalidAddress is a local precondition failure; no network call has
	// been made when it is returned.
	ErrInvalidAddress = errors.New("invalid IPv4 address")
	// ErrProviderUnavailable covers transport failures, non-success statuses
	// and decoded responses that carry no usable address.
	ErrProviderUnavailable = errors.New("ip lookup provider unavailable")
	// ErrMalformedResponse means the provider answered but the payload could
	// not be decoded. Handled like ErrProviderUnavailable but kept distinct
	// for diagnostics.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// Four dot-separated groups of 1-3 digits, nothing else. IPv6 and hostnames
// are rejected up front.
var ipv4Pattern = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)

// providerResponse mirrors the geolocation provider payload. Every field is
// optional; defaulting to Unknown happens here at the boundary, not in the
// business logic.
type providerResponse struct {
	IP       string `json:"ip"`
	Country  string `json:"country"`
	Region   string `json:"region"`
	City     string `json:"city"`
	Postal   string `json:"postal"`
	Timezone string `json:"timezone"`
	Org      string `json:"org"`
	ASN      string `json:"asn"`
	Loc      string `json:"loc"`
}

type callerResponse struct {
	IP string `json:"ip"`
}

// IPLookupService resolves addresses against a remote geolocation provider
// and the caller's own address against a separate caller-IP provider. Every
// outbound call is bounded by the client timeout; one request per lookup, no
// retries.
type IPLookupService struct {
	client      *http.Client
	providerURL string
	callerURL   string
}

func NewIPLookupService(providerURL, callerURL string, timeout time.Duration) *IPLookupService {
	client := &http.Client{
		Timeout: timeout,
	}

	return &IPLookupService{
		client:      client,
		providerURL: strings.TrimRight(providerURL, "/"),
		callerURL:   callerURL,
	}
}

// ValidAddress reports whether ip is plain dotted-quad IPv4 syntax with each
// group in the 0-255 range.
func ValidAddress(ip string) bool {
	if !ipv4Pattern.MatchString(ip) {
		return false
	}
	for _, group := range strings.Split(ip, ".") {
		n, err := strconv.Atoi(group)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}

// Lookup resolves ip to its geolocation fields. An empty ip asks the provider
// for the caller's own address. The returned answer always carries the
// provider-reported address, which may differ from the literal input.
func (s *IPLookupService) Lookup(ctx context.Context, ip string) (*models.IPAnswer, error) {
	url := s.providerURL + "/json"
	if ip != "" {
		if !ValidAddress(ip) {
			return nil, ErrInvalidAddress
		}
		url = fmt.Sprintf("%s/%s/json", s.providerURL, ip)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: provider returned status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var payload providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if payload.IP == "" {
		return nil, fmt.Errorf("%w: response carries no address", ErrProviderUnavailable)
	}

	answer := &models.IPAnswer{
		IP:       payload.IP,
		Country:  orUnknown(payload.Country),
		Region:   orUnknown(payload.Region),
		City:     orUnknown(payload.City),
		Postal:   orUnknown(payload.Postal),
		Timezone: orUnknown(payload.Timezone),
		Org:      orUnknown(payload.Org),
		ASN:      orUnknown(payload.ASN),
	}

	if lat, lon, ok := parseCoordinates(payload.Loc); ok {
		answer.Latitude = &lat
		answer.Longitude = &lon
	}

	return answer, nil
}

// ResolveCallerAddress asks the caller-IP provider for the caller's public
// address. Callers stamping requester_ip must treat a failure as best-effort
// and substitute models.Unknown rather than aborting their lookup.
func (s *IPLookupService) ResolveCallerAddress(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.callerURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: caller address provider returned status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var payload callerResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if payload.IP == "" {
		return "", fmt.Errorf("%w: caller address response carries no address", ErrProviderUnavailable)
	}

	return payload.IP, nil
}

// parseCoordinates splits the provider's "lat,lon" string. An absent or
// unparsable value just means no coordinates.
func parseCoordinates(loc string) (float64, float64, bool) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}

	return lat, lon, true
}

func orUnknown(value string) string {
	if value == "" {
		return models.Unknown
	}
	return value
}

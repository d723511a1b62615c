package lookup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"lookup-tracker/db"
	"lookup-tracker/internal/iplookup"
	"lookup-tracker/internal/phonelookup"
	"lookup-tracker/models"
)

// WarningNotRecorded is surfaced on an otherwise successful lookup whose
// history write failed. The lookup result itself is still returned.
const WarningNotRecorded = "lookup succeeded but could not be recorded"

// ErrUnknownMode is returned for an IP lookup submitted with a mode other
// than auto-detect or custom.
var ErrUnknownMode = errors.New("unknown lookup mode")

// PhoneResolver resolves a phone number to region and carrier metadata.
type PhoneResolver interface {
	Resolve(number string) (*models.PhoneAnswer, error)
}

// IPResolver resolves addresses against the remote geolocation provider.
type IPResolver interface {
	Lookup(ctx context.Context, ip string) (*models.IPAnswer, error)
	ResolveCallerAddress(ctx context.Context) (string, error)
}

// LookupService orchestrates the two lookup flows: validate, resolve,
// reconcile, record, return. Every submission appends a new store row; two
// identical submissions are two events, deduplication is deliberately absent.
type LookupService struct {
	phones PhoneResolver
	ips    IPResolver
	repo   db.SearchRepository
}

func NewLookupService(phones PhoneResolver, ips IPResolver, repo db.SearchRepository) *LookupService {
	return &LookupService{
		phones: phones,
		ips:    ips,
		repo:   repo,
	}
}

// SubmitPhoneLookup resolves number and appends a phone search record. A
// non-empty manualOperator takes precedence as the effective operator; the
// detected operator stays visible alongside it. Validation failures return
// phonelookup.ErrInvalidNumber before any network or storage work.
func (s *LookupService) SubmitPhoneLookup(ctx context.Context, number, manualOperator string) (*models.LookupResult, error) {
	answer, err := s.phones.Resolve(number)
	if err != nil {
		return nil, err
	}

	// Requester address resolution is best-effort and independent of the
	// lookup itself; run it while the record is assembled.
	requesterCh := make(chan string, 1)
	go func() {
		requesterCh <- s.requesterAddress(ctx)
	}()

	manual := strings.TrimSpace(manualOperator)
	if manual != "" {
		answer.EffectiveOperator = manual
	}

	record := &models.PhoneSearch{
		MaskedNumber:     phonelookup.MaskNumber(number),
		DetectedRegion:   answer.Region,
		DetectedOperator: answer.DetectedOperator,
		RequesterIP:      <-requesterCh,
	}
	if manual != "" {
		record.ManualOperator = &manual
	}

	result := &models.LookupResult{Phone: answer}
	if err := s.repo.CreatePhone(ctx, record); err != nil {
		log.Printf("Failed to record phone search: %v", err)
		result.Warning = WarningNotRecorded
	}

	return result, nil
}

// SubmitIPLookup resolves an address and appends an IP search record. In
// auto-detect mode the target is the caller's own address and a failure to
// resolve it aborts the flow, since there is nothing to look up. In custom
// mode the address syntax is checked before any network call.
func (s *LookupService) SubmitIPLookup(ctx context.Context, mode models.LookupMode, ip string) (*models.LookupResult, error) {
	var answer *models.IPAnswer
	var requesterIP string

	switch mode {
	case models.LookupModeAutoDetect:
		caller, err := s.ips.ResolveCallerAddress(ctx)
		if err != nil {
			return nil, err
		}

		answer, err = s.ips.Lookup(ctx, caller)
		if err != nil {
			return nil, err
		}

		// The caller address is already known for this request; reuse it
		// rather than asking the provider a second time.
		requesterIP = caller

	case models.LookupModeCustomIP:
		target := strings.TrimSpace(ip)
		if !iplookup.ValidAddress(target) {
			return nil, iplookup.ErrInvalidAddress
		}

		requesterCh := make(chan string, 1)
		go func() {
			requesterCh <- s.requesterAddress(ctx)
		}()

		var err error
		answer, err = s.ips.Lookup(ctx, target)
		if err != nil {
			return nil, err
		}

		requesterIP = <-requesterCh

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	record := &models.IPSearch{
		QueriedIP:   answer.IP,
		Country:     answer.Country,
		Region:      answer.Region,
		City:        answer.City,
		ISP:         answer.Org,
		Latitude:    answer.Latitude,
		Longitude:   answer.Longitude,
		LookupMode:  mode,
		RequesterIP: requesterIP,
	}

	result := &models.LookupResult{IP: answer}
	if err := s.repo.CreateIP(ctx, record); err != nil {
		log.Printf("Failed to record ip search: %v", err)
		result.Warning = WarningNotRecorded
	}

	return result, nil
}

func (s *LookupService) requesterAddress(ctx context.Context) string {
	ip, err := s.ips.ResolveCallerAddress(ctx)
	if err != nil {
		log.Printf("Could not resolve requester address: %v", err)
		return models.Unknown
	}
	return ip
}

package phonelookup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"lookup-tracker/models"
)

// ErrInvalidNumber means the input could not be parsed as a phone number at
// all. A number that parses but has no known region or carrier is not an
// error; those resolve to Unknown.
var ErrInvalidNumber = errors.New("invalid phone number")

const maskedDigits = 5

// PhoneLookupService resolves a phone number to a region description and a
// carrier name from the static numbering-plan metadata tables.
type PhoneLookupService struct {
	geocoderRegion string
	carrierRegion  string
	lang           string
}

func NewPhoneLookupService(geocoderRegion, carrierRegion string) *PhoneLookupService {
	return &PhoneLookupService{
		geocoderRegion: geocoderRegion,
		carrierRegion:  carrierRegion,
		lang:           "en",
	}
}

// Resolve parses number and returns its region description and carrier name.
// The two fields come from two independent parsing contexts: the region is
// parsed under the geocoder region hint, the carrier under the carrier region
// hint, and the answers are not guaranteed to agree. The detected operator
// reflects the number's original numbering-plan assignment, not its current
// porting status.
func (s *PhoneLookupService) Resolve(number string) (*models.PhoneAnswer, error) {
	trimmed := strings.TrimSpace(number)
	if trimmed == "" {
		return nil, ErrInvalidNumber
	}

	parsed, err := phonenumbers.Parse(trimmed, s.geocoderRegion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}

	region, err := phonenumbers.GetGeocodingForNumber(parsed, s.lang)
	if err != nil || region == "" {
		region = models.Unknown
	}

	operator := models.Unknown
	if carrierParsed, err := phonenumbers.Parse(trimmed, s.carrierRegion); err == nil {
		if name, err := phonenumbers.GetCarrierForNumber(carrierParsed, s.lang); err == nil && name != "" {
			operator = name
		}
	}

	return &models.PhoneAnswer{
		Region:            region,
		DetectedOperator:  operator,
		EffectiveOperator: operator,
	}, nil
}

// MaskNumber reduces raw to at most its first five digits followed by a mask
// marker. The full number must never reach the store.
func MaskNumber(raw string) string {
	var kept strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			kept.WriteRune(r)
			if kept.Len() == maskedDigits {
				break
			}
		}
	}
	return kept.String() + "*****"
}

package lookup

import (
	"context"
	"errors"
	"testing"

	"lookup-tracker/internal/iplookup"
	"lookup-tracker/internal/phonelookup"
	"lookup-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPhoneResolver struct {
	answer *models.PhoneAnswer
	err    error
}

func (s *stubPhoneResolver) Resolve(number string) (*models.PhoneAnswer, error) {
	if s.err != nil {
		return nil, s.err
	}
	answer := *s.answer
	return &answer, nil
}

type stubIPResolver struct {
	answer      *models.IPAnswer
	lookupErr   error
	callerIP    string
	callerErr   error
	lookupCalls int
	lookupArgs  []string
	callerCalls int
}

func (s *stubIPResolver) Lookup(ctx context.Context, ip string) (*models.IPAnswer, error) {
	s.lookupCalls++
	s.lookupArgs = append(s.lookupArgs, ip)
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	answer := *s.answer
	return &answer, nil
}

func (s *stubIPResolver) ResolveCallerAddress(ctx context.Context) (string, error) {
	s.callerCalls++
	if s.callerErr != nil {
		return "", s.callerErr
	}
	return s.callerIP, nil
}

type stubRepo struct {
	phoneRecords []*models.PhoneSearch
	ipRecords    []*models.IPSearch
	createErr    error
}

func (s *stubRepo) Close() error { return nil }

func (s *stubRepo) CreatePhone(ctx context.Context, search *models.PhoneSearch) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.phoneRecords = append(s.phoneRecords, search)
	return nil
}

func (s *stubRepo) CreateIP(ctx context.Context, search *models.IPSearch) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.ipRecords = append(s.ipRecords, search)
	return nil
}

func (s *stubRepo) CountByCountry(ctx context.Context, kind models.SearchKind, limit int) ([]models.CountryCount, error) {
	return nil, nil
}

func (s *stubRepo) FindRecent(ctx context.Context, limit int) ([]models.SearchEvent, error) {
	return nil, nil
}

func (s *stubRepo) CountByKind(ctx context.Context, kind models.SearchKind) (int, error) {
	return 0, nil
}

func newTestService() (*LookupService, *stubPhoneResolver, *stubIPResolver, *stubRepo) {
	phones := &stubPhoneResolver{
		answer: &models.PhoneAnswer{
			Region:            "Switzerland",
			DetectedOperator:  "Orange",
			EffectiveOperator: "Orange",
		},
	}
	ips := &stubIPResolver{
		answer: &models.IPAnswer{
			IP:      "8.8.8.8",
			Country: "US",
			Region:  "California",
			City:    "Mountain View",
			Org:     "Google LLC",
		},
		callerIP: "203.0.113.7",
	}
	repo := &stubRepo{}
	return NewLookupService(phones, ips, repo), phones, ips, repo
}

func TestSubmitPhoneLookup_InvalidNumberWritesNothing(t *testing.T) {
	service, phones, _, repo := newTestService()
	phones.err = phonelookup.ErrInvalidNumber

	result, err := service.SubmitPhoneLookup(context.Background(), "abc", "")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, phonelookup.ErrInvalidNumber)
	assert.Empty(t, repo.phoneRecords)
}

func TestSubmitPhoneLookup_RecordsMaskedNumber(t *testing.T) {
	service, _, _, repo := newTestService()

	result, err := service.SubmitPhoneLookup(context.Background(), "+41791234567", "")
	require.NoError(t, err)
	require.NotNil(t, result.Phone)
	assert.Empty(t, result.Warning)

	require.Len(t, repo.phoneRecords, 1)
	record := repo.phoneRecords[0]
	assert.Equal(t, "41791*****", record.MaskedNumber)
	assert.Equal(t, "Switzerland", record.DetectedRegion)
	assert.Equal(t, "Orange", record.DetectedOperator)
	assert.Nil(t, record.ManualOperator)
	assert.Equal(t, "203.0.113.7", record.RequesterIP)
}

func TestSubmitPhoneLookup_ManualOperatorPrecedence(t *testing.T) {
	service, _, _, repo := newTestService()

	result, err := service.SubmitPhoneLookup(context.Background(), "+41791234567", "  Vodafone  ")
	require.NoError(t, err)

	// The override wins, the detected operator stays visible untouched.
	assert.Equal(t, "Vodafone", result.Phone.EffectiveOperator)
	assert.Equal(t, "Orange", result.Phone.DetectedOperator)

	require.Len(t, repo.phoneRecords, 1)
	require.NotNil(t, repo.phoneRecords[0].ManualOperator)
	assert.Equal(t, "Vodafone", *repo.phoneRecords[0].ManualOperator)
}

func TestSubmitPhoneLookup_BlankManualOperatorIgnored(t *testing.T) {
	service, _, _, repo := newTestService()

	result, err := service.SubmitPhoneLookup(context.Background(), "+41791234567", "   ")
	require.NoError(t, err)
	assert.Equal(t, "Orange", result.Phone.EffectiveOperator)
	assert.Nil(t, repo.phoneRecords[0].ManualOperator)
}

func TestSubmitPhoneLookup_RequesterAddressDegrades(t *testing.T) {
	service, _, ips, repo := newTestService()
	ips.callerErr = iplookup.ErrProviderUnavailable

	result, err := service.SubmitPhoneLookup(context.Background(), "+41791234567", "")
	require.NoError(t, err)
	require.NotNil(t, result.Phone)

	require.Len(t, repo.phoneRecords, 1)
	assert.Equal(t, models.Unknown, repo.phoneRecords[0].RequesterIP)
}

func TestSubmitPhoneLookup_PersistFailureStillReturnsResult(t *testing.T) {
	service, _, _, repo := newTestService()
	repo.createErr = errors.New("disk full")

	result, err := service.SubmitPhoneLookup(context.Background(), "+41791234567", "")
	require.NoError(t, err)
	require.NotNil(t, result.Phone)
	assert.Equal(t, WarningNotRecorded, result.Warning)
}

func TestSubmitIPLookup_CustomMode(t *testing.T) {
	service, _, ips, repo := newTestService()

	result, err := service.SubmitIPLookup(context.Background(), models.LookupModeCustomIP, "8.8.8.8")
	require.NoError(t, err)
	require.NotNil(t, result.IP)

	assert.Equal(t, []string{"8.8.8.8"}, ips.lookupArgs)
	require.Len(t, repo.ipRecords, 1)
	record := repo.ipRecords[0]
	assert.Equal(t, "8.8.8.8", record.QueriedIP)
	assert.Equal(t, "US", record.Country)
	assert.Equal(t, "Google LLC", record.ISP)
	assert.Equal(t, models.LookupModeCustomIP, record.LookupMode)
	assert.Equal(t, "203.0.113.7", record.RequesterIP)
}

func TestSubmitIPLookup_InvalidAddressShortCircuits(t *testing.T) {
	service, _, ips, repo := newTestService()

	for _, ip := range []string{"", "999.999.999.999", "::1", "8.8.8.8 extra"} {
		result, err := service.SubmitIPLookup(context.Background(), models.LookupModeCustomIP, ip)
		assert.Nil(t, result, "ip %q", ip)
		assert.ErrorIs(t, err, iplookup.ErrInvalidAddress, "ip %q", ip)
	}

	assert.Equal(t, 0, ips.lookupCalls)
	assert.Equal(t, 0, ips.callerCalls)
	assert.Empty(t, repo.ipRecords)
}

func TestSubmitIPLookup_AutoDetectReusesCallerAddress(t *testing.T) {
	service, _, ips, repo := newTestService()

	result, err := service.SubmitIPLookup(context.Background(), models.LookupModeAutoDetect, "")
	require.NoError(t, err)
	require.NotNil(t, result.IP)

	assert.Equal(t, []string{"203.0.113.7"}, ips.lookupArgs)
	// One caller-address resolution per request; the cached address stamps
	// requester_ip.
	assert.Equal(t, 1, ips.callerCalls)
	require.Len(t, repo.ipRecords, 1)
	assert.Equal(t, "203.0.113.7", repo.ipRecords[0].RequesterIP)
	assert.Equal(t, models.LookupModeAutoDetect, repo.ipRecords[0].LookupMode)
}

func TestSubmitIPLookup_AutoDetectAbortsWithoutCallerAddress(t *testing.T) {
	service, _, ips, repo := newTestService()
	ips.callerErr = iplookup.ErrProviderUnavailable

	result, err := service.SubmitIPLookup(context.Background(), models.LookupModeAutoDetect, "")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, iplookup.ErrProviderUnavailable)
	assert.Equal(t, 0, ips.lookupCalls)
	assert.Empty(t, repo.ipRecords)
}

func TestSubmitIPLookup_ProviderFailureWritesNothing(t *testing.T) {
	service, _, ips, repo := newTestService()
	ips.lookupErr = iplookup.ErrProviderUnavailable

	result, err := service.SubmitIPLookup(context.Background(), models.LookupModeCustomIP, "8.8.8.8")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, iplookup.ErrProviderUnavailable)
	assert.Empty(t, repo.ipRecords)
}

func TestSubmitIPLookup_UnknownMode(t *testing.T) {
	service, _, _, _ := newTestService()

	result, err := service.SubmitIPLookup(context.Background(), models.LookupMode("bogus"), "")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestSubmitIPLookup_PersistFailureStillReturnsResult(t *testing.T) {
	service, _, _, repo := newTestService()
	repo.createErr = errors.New("corrupt store")

	result, err := service.SubmitIPLookup(context.Background(), models.LookupModeCustomIP, "8.8.8.8")
	require.NoError(t, err)
	require.NotNil(t, result.IP)
	assert.Equal(t, WarningNotRecorded, result.Warning)
}

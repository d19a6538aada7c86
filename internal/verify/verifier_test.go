package verify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/dealer-scout/internal/model"
)

func newTestVerifier(site Site) *Verifier {
	return NewVerifier(site, WithPacer(DelayPacer{}), WithClock(fixedClock(2026)))
}

func candidate() model.Candidate {
	return model.Candidate{
		Name:          "Teton GMC",
		Website:       "https://teton.test",
		OEM:           "GMC",
		Address:       "1 Main St, Idaho Falls, ID",
		SearchResults: "Teton GMC - new GMC Sierra 2026",
	}
}

func TestVerify_Valid(t *testing.T) {
	site := newFakeSite().page("https://teton.test", "Teton GMC Buick. Copyright 2026")
	v, err := newTestVerifier(site).Verify(context.Background(), candidate())
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, "Valid: Competitor currently exists, sells target OEM, and website is operational.", v.String())
}

func TestVerify_WebsiteNotOperational(t *testing.T) {
	site := newFakeSite()
	site.statuses["https://teton.test"] = model.StatusFromCode(404)

	v, err := newTestVerifier(site).Verify(context.Background(), candidate())
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Equal(t, "Invalid: Website https://teton.test is non-operational (status: 404).", v.String())
	assert.Equal(t, 0, site.fetches, "later gates are skipped")
}

func TestVerify_WebsiteUnreachable(t *testing.T) {
	v, err := newTestVerifier(newFakeSite()).Verify(context.Background(), candidate())
	require.NoError(t, err)
	assert.Equal(t, "Invalid: Website https://teton.test is unreachable: no such host.", v.String())
}

func TestVerify_OEMGatePrecedesExistence(t *testing.T) {
	// Operational, recent, but the page never mentions GMC.
	site := newFakeSite().page("https://teton.test", "Teton Toyota. Copyright 2026")

	v, err := newTestVerifier(site).Verify(context.Background(), candidate())
	require.NoError(t, err)
	assert.Equal(t, "Invalid: Teton GMC does not sell GMC.", v.String())
}

func TestVerify_NoSearchResults(t *testing.T) {
	site := newFakeSite().page("https://teton.test", "GMC")
	c := candidate()
	c.SearchResults = ""

	v, err := newTestVerifier(site).Verify(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "Invalid: No search results provided for Teton GMC.", v.String())
}

func TestVerify_MayNotExist(t *testing.T) {
	site := newFakeSite().page("https://teton.test", "GMC dealer")
	c := candidate()
	c.SearchResults = "Teton GMC permanently closed"

	v, err := newTestVerifier(site).Verify(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "Invalid: Teton GMC may not currently exist. Found indications that the dealership may be closed.", v.String())
}

func TestVerify_PacingInterrupted(t *testing.T) {
	site := newFakeSite().page("https://teton.test", "GMC")
	v := NewVerifier(site, WithPacer(DelayPacer{Delay: time.Hour}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := v.Verify(ctx, candidate())
	require.Error(t, err)
	assert.Equal(t, 0, site.checks)
}

func TestVerify_DefaultDelay(t *testing.T) {
	site := newFakeSite().page("https://teton.test", "GMC Copyright 2026")
	v := NewVerifier(site, WithClock(fixedClock(2026)))

	start := time.Now()
	_, err := v.Verify(context.Background(), candidate())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}

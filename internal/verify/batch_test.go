package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/dealer-scout/internal/model"
)

func TestVerifyAll_KeepsInputOrder(t *testing.T) {
	site := newFakeSite().
		page("https://a.test", "GMC copyright 2026").
		page("https://c.test", "Toyota only")
	v := newTestVerifier(site)

	candidates := []model.Candidate{
		{Name: "A", Website: "https://a.test", OEM: "GMC", SearchResults: "GMC 2026"},
		{Name: "B", Website: "https://b.test", OEM: "GMC", SearchResults: "GMC 2026"},
		{Name: "C", Website: "https://c.test", OEM: "GMC", SearchResults: "GMC 2026"},
	}

	results, err := v.VerifyAll(context.Background(), candidates, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "A", results[0].Candidate.Name)
	assert.True(t, results[0].Verdict.Valid)

	assert.Equal(t, "B", results[1].Candidate.Name)
	assert.Contains(t, results[1].Verdict.Reason, "unreachable")

	assert.Equal(t, "C", results[2].Candidate.Name)
	assert.Equal(t, "C does not sell GMC.", results[2].Verdict.Reason)
	assert.Equal(t, 3, site.checks)
}

func TestVerifyAll_RejectsDuplicateKeys(t *testing.T) {
	site := newFakeSite()
	candidates := []model.Candidate{
		{Name: "A", Website: "https://a.test"},
		{Name: " a ", Website: "HTTPS://A.TEST"},
	}
	_, err := newTestVerifier(site).VerifyAll(context.Background(), candidates, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
	assert.Equal(t, 0, site.checks)
}

func TestVerifyAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := newTestVerifier(newFakeSite()).VerifyAll(ctx, []model.Candidate{{Name: "A"}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
}

package verify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, time.June, 1, 12, 0, 0, 0, time.UTC) }
}

func newChecker(site Site, year int) *RecencyChecker {
	c := NewRecencyChecker(site)
	c.now = fixedClock(year)
	return c
}

func TestAssessExistence_ClosureShortCircuits(t *testing.T) {
	site := newFakeSite().page("https://d.test", "Copyright 2026 GMC")
	c := newChecker(site, 2026)

	got := c.AssessExistence(context.Background(), "Liberty GMC", "", "GMC", "https://d.test",
		"Liberty GMC 2026 - PERMANENTLY CLOSED")
	assert.False(t, got.Valid)
	assert.Contains(t, got.Detail, "closed")
	assert.Equal(t, 0, site.fetches, "closure check precedes the website fetch")
}

func TestAssessExistence_ClosureKeywords(t *testing.T) {
	c := newChecker(newFakeSite(), 2026)
	for _, text := range []string{"store closed", "Shut Down in 2020", "went out of business"} {
		got := c.AssessExistence(context.Background(), "X", "", "GMC", "https://d.test", text)
		assert.False(t, got.Valid, text)
		assert.Equal(t, "Found indications that the dealership may be closed.", got.Detail)
	}
}

func TestAssessExistence_NoRecentMentions(t *testing.T) {
	c := newChecker(newFakeSite(), 2026)
	got := c.AssessExistence(context.Background(), "X", "", "GMC", "https://d.test", "a dealership in 2019")
	assert.False(t, got.Valid)
	assert.Equal(t, "No recent mentions found in search results.", got.Detail)
}

func TestAssessExistence_OEMAloneIsEnough(t *testing.T) {
	site := newFakeSite().page("https://d.test", "no footer")
	c := newChecker(site, 2026)
	got := c.AssessExistence(context.Background(), "X", "", "GMC", "https://d.test", "new gmc trucks")
	assert.True(t, got.Valid)
	assert.Equal(t, "Active and recent", got.Detail)
}

func TestAssessExistence_CurrentYearAloneIsEnough(t *testing.T) {
	site := newFakeSite().page("https://d.test", "no footer")
	c := newChecker(site, 2026)
	got := c.AssessExistence(context.Background(), "X", "", "GMC", "https://d.test", "reviews from 2026")
	assert.True(t, got.Valid)
}

func TestAssessExistence_Copyright(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		valid bool
	}{
		{"current year", "© Copyright 2026 Liberty GMC", true},
		{"previous year", "Copyright © 2025", true},
		{"two years old", "Copyright 2024 Liberty GMC", false},
		{"max wins", "copyright 2015 ... Copyright 2026", true},
		{"range counts first year", "Copyright 2016-2026", false},
		{"no copyright", "Liberty GMC since 1990", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newFakeSite().page("https://d.test", tt.text)
			got := newChecker(site, 2026).AssessExistence(context.Background(), "X", "", "GMC", "https://d.test", "GMC 2026")
			assert.Equal(t, tt.valid, got.Valid, got.Detail)
			if !tt.valid {
				assert.Contains(t, got.Detail, "outdated")
				assert.Regexp(t, `latest copyright 20(16|24)\)`, got.Detail)
			}
		})
	}
}

func TestAssessExistence_FetchErrorFailsClosed(t *testing.T) {
	site := newFakeSite()
	site.fetchErr["https://d.test"] = errors.New("timeout")
	got := newChecker(site, 2026).AssessExistence(context.Background(), "X", "", "GMC", "https://d.test", "GMC")
	assert.False(t, got.Valid)
	assert.Equal(t, "Error during existence check: timeout", got.Detail)
}

func TestLatestCopyrightYear(t *testing.T) {
	y, ok := LatestCopyrightYear("Copyright 2003 foo\ncopyright bar 2021 baz 2030")
	assert.True(t, ok)
	assert.Equal(t, 2021, y, "only the first year after each marker counts")

	_, ok = LatestCopyrightYear("copyright\n2024")
	assert.False(t, ok, "marker and year must share a line")
}

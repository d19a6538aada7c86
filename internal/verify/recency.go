package verify

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sells-group/dealer-scout/internal/model"
)

var closureKeywords = []string{"closed", "shut down", "permanently closed", "out of business"}

var copyrightRe = regexp.MustCompile(`(?i)copyright.*?(\d{4})`)

// RecencyChecker looks for signs that a dealership has closed or gone stale.
type RecencyChecker struct {
	site Site
	now  func() time.Time
}

// NewRecencyChecker creates a RecencyChecker using the wall clock.
func NewRecencyChecker(site Site) *RecencyChecker {
	return &RecencyChecker{site: site, now: time.Now}
}

// AssessExistence runs the closure, recent-mention and copyright checks in
// that order and stops at the first failure. name and address are accepted
// for parity with the verifier's inputs; the checks themselves only read
// the search text and the website.
func (c *RecencyChecker) AssessExistence(ctx context.Context, name, address, oem, website, searchResults string) model.Existence {
	results := strings.ToLower(searchResults)
	for _, k := range closureKeywords {
		if strings.Contains(results, k) {
			return model.Existence{Detail: "Found indications that the dealership may be closed."}
		}
	}

	year := c.now().Year()
	// Both must be absent to fail.
	if !strings.Contains(results, strconv.Itoa(year)) && !strings.Contains(results, strings.ToLower(oem)) {
		return model.Existence{Detail: "No recent mentions found in search results."}
	}

	text, err := c.site.FetchText(ctx, website)
	if err != nil {
		return model.Existence{Detail: "Error during existence check: " + err.Error()}
	}

	if latest, ok := LatestCopyrightYear(text); ok && latest < year-1 {
		return model.Existence{Detail: fmt.Sprintf("Website appears outdated (latest copyright %d).", latest)}
	}

	return model.Existence{Valid: true, Detail: "Active and recent"}
}

// LatestCopyrightYear returns the highest year found after a "copyright"
// marker on the same line.
func LatestCopyrightYear(text string) (int, bool) {
	latest, found := 0, false
	for _, m := range copyrightRe.FindAllStringSubmatch(text, -1) {
		y, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if !found || y > latest {
			latest, found = y, true
		}
	}
	return latest, found
}

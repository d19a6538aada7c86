// Package verify decides whether a proposed competitor dealership is real,
// reachable, current, and franchised for the target OEM.
package verify

import (
	"context"

	"github.com/sells-group/dealer-scout/internal/model"
)

// Site is the subset of website.Prober the checks depend on.
type Site interface {
	Check(ctx context.Context, url string) model.WebsiteStatus
	FetchText(ctx context.Context, url string) (string, error)
}

package tools

import (
	"context"

	"github.com/sells-group/dealer-scout/internal/model"
	"github.com/sells-group/dealer-scout/internal/verify"
)

// Competitor is the competitor_verifier tool.
type Competitor struct {
	verifier *verify.Verifier
}

// NewCompetitor wraps a verifier.
func NewCompetitor(v *verify.Verifier) *Competitor {
	return &Competitor{verifier: v}
}

func (c *Competitor) Name() string { return "competitor_verifier" }

func (c *Competitor) Description() string {
	return "Checks that a competitor dealership's website is up, that it sells the target OEM, and that it still exists."
}

func (c *Competitor) Parameters() []string {
	return []string{"competitor_name", "competitor_website", "target_oem", "competitor_address", "search_results"}
}

func (c *Competitor) Run(ctx context.Context, args Args) string {
	verdict, err := c.verifier.Verify(ctx, model.Candidate{
		Name:          args["competitor_name"],
		Website:       args["competitor_website"],
		OEM:           args["target_oem"],
		Address:       args["competitor_address"],
		SearchResults: args["search_results"],
	})
	if err != nil {
		return "Error verifying competitor: " + err.Error()
	}
	return verdict.String()
}

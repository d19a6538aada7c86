package model

// Candidate is a competitor dealership proposed by the research stage.
// The location fields mirror the competitors.json export and are carried
// through verification untouched.
type Candidate struct {
	Name          string `json:"name" yaml:"name"`
	Website       string `json:"website" yaml:"website"`
	OEM           string `json:"oem" yaml:"oem"`
	Address       string `json:"address" yaml:"address"`
	SearchResults string `json:"search_results,omitempty" yaml:"search_results,omitempty"`

	Distance  string `json:"distance,omitempty" yaml:"distance,omitempty"`
	City      string `json:"city,omitempty" yaml:"city,omitempty"`
	State     string `json:"state,omitempty" yaml:"state,omitempty"`
	Latitude  string `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Range     string `json:"range,omitempty" yaml:"range,omitempty"`
}

// Verdict is the outcome of verifying one competitor.
type Verdict struct {
	Valid  bool   `json:"valid" yaml:"valid"`
	Reason string `json:"reason" yaml:"reason"`
}

// String renders the verdict as "Valid: ..." or "Invalid: ...".
func (v Verdict) String() string {
	if v.Valid {
		return "Valid: " + v.Reason
	}
	return "Invalid: " + v.Reason
}

// Existence is the outcome of the recency/existence check.
type Existence struct {
	Valid  bool
	Detail string
}

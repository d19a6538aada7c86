package model

// PopulationRecord is a populated place matched in the place-search provider.
type PopulationRecord struct {
	PlaceName  string `json:"place_name" yaml:"place_name"`
	State      string `json:"state" yaml:"state"`
	Population int64  `json:"population" yaml:"population"`
	Year       string `json:"year" yaml:"year"`
}

// City is a candidate market around a dealership.
type City struct {
	City  string `json:"city" yaml:"city"`
	State string `json:"state" yaml:"state"`
}

// Opportunity is a city that qualified as a market: populated and within
// range of the dealership.
type Opportunity struct {
	City       string   `json:"city" yaml:"city"`
	State      string   `json:"state" yaml:"state"`
	Point      GeoPoint `json:"point" yaml:"point"`
	Miles      float64  `json:"miles" yaml:"miles"`
	RangeMiles float64  `json:"range" yaml:"range"`
	Population int64    `json:"population" yaml:"population"`
}

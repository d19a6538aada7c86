package model

import (
	"fmt"
	"net/http"
)

// WebsiteState classifies the outcome of a website probe.
type WebsiteState int

const (
	WebsiteOperational WebsiteState = iota
	WebsiteNonOperational
	WebsiteUnreachable
)

// WebsiteStatus is the result of a single probe. Code is set for
// non-operational responses, Reason for transport failures.
type WebsiteStatus struct {
	State  WebsiteState
	Code   int
	Reason string
}

// Operational reports whether the probe got an HTTP 200.
func (s WebsiteStatus) Operational() bool {
	return s.State == WebsiteOperational
}

// String renders the status the way tool callers expect to read it.
func (s WebsiteStatus) String() string {
	switch s.State {
	case WebsiteOperational:
		return "Operational"
	case WebsiteNonOperational:
		return fmt.Sprintf("Non-operational (Status: %d)", s.Code)
	default:
		return "Unreachable: " + s.Reason
	}
}

// StatusFromCode maps an HTTP status code to a WebsiteStatus.
func StatusFromCode(code int) WebsiteStatus {
	if code == http.StatusOK {
		return WebsiteStatus{State: WebsiteOperational, Code: code}
	}
	return WebsiteStatus{State: WebsiteNonOperational, Code: code}
}

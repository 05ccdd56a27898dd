package domain

import "time"

// AuditEntry is one row per completed request. Entries are written once by
// the audit recorder and never mutated; ordering across concurrent requests
// is not guaranteed and the sink does not need it.
type AuditEntry struct {
	ID             string
	Method         string
	Endpoint       string
	UserID         *string
	StatusCode     int
	ResponseTimeMs int64
	CFCountry      *string
	CFRayID        *string
	CreatedAt      time.Time
}

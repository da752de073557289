package models

// ReportType enum
type ReportType string

const (
	Infrastructure ReportType = "infrastructure"
	Safety         ReportType = "safety"
	Environment    ReportType = "environment"
	Traffic        ReportType = "traffic"
	PublicServices ReportType = "public-services"
	OtherType      ReportType = "other"
)

// IsValid reports whether t is one of the enumerated categories.
func (t ReportType) IsValid() bool {
	switch t {
	case Infrastructure, Safety, Environment, Traffic, PublicServices, OtherType:
		return true
	}
	return false
}

// ReportStatus enum
type ReportStatus string

const (
	Pending    ReportStatus = "pending"
	InProgress ReportStatus = "in-progress"
	Resolved   ReportStatus = "resolved"
)

// IsValid reports whether s is one of the enumerated statuses.
func (s ReportStatus) IsValid() bool {
	switch s {
	case Pending, InProgress, Resolved:
		return true
	}
	return false
}

// Report represents a citizen-submitted record of a city issue.
// Everything except Status is immutable after creation; Timestamp is
// the millisecond creation time and doubles as the sort key.
type Report struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        ReportType   `json:"type"`
	Location    string       `json:"location"`
	ImageURL    *string      `json:"imageUrl,omitempty"`
	Status      ReportStatus `json:"status"`
	Timestamp   int64        `json:"timestamp"`
}

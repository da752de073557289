package notify

import (
	"testing"

	"cityreport-be/models"
)

// A nil *Publisher is the "eventing not configured" value wired
// straight into the controllers, so every exported method must be
// callable on it.
func TestNilPublisherIsInert(t *testing.T) {
	var p *Publisher

	rep := &models.Report{
		ID:        "1755000001000",
		Title:     "Pothole on Elm Street",
		Type:      models.Infrastructure,
		Status:    models.Pending,
		Timestamp: 1755000001000,
	}

	p.ReportCreated(rep)
	p.StatusChanged(rep)
	p.Close()
}

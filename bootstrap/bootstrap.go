// Package bootstrap runs the idempotent startup routines: storage
// bucket provisioning, admin identity provisioning and first-run
// sample data.
package bootstrap

import (
	"context"
	"log"

	"cityreport-be/models"
	"cityreport-be/repository"
	"cityreport-be/storage"
)

// IdentityProvisioner is the slice of the identity service bootstrap
// needs; kept as an interface so tests provision against a fake.
type IdentityProvisioner interface {
	EnsureUser(ctx context.Context, email, password, name, role string) error
}

type Deps struct {
	Repo     *repository.ReportRepository
	Identity IdentityProvisioner
	Blob     storage.BlobStore

	AdminEmail    string
	AdminPassword string
}

// Run executes every bootstrap step. A missing bucket only degrades
// uploads, so bucket provisioning failure is logged and skipped; the
// admin identity and seed data are required.
func Run(ctx context.Context, deps Deps) error {
	if deps.Blob != nil {
		if err := deps.Blob.EnsureBucket(ctx); err != nil {
			log.Printf("bootstrap: bucket provisioning failed (uploads degraded): %v", err)
		}
	}

	if err := deps.Identity.EnsureUser(ctx, deps.AdminEmail, deps.AdminPassword, "City Administrator", models.RoleAdmin); err != nil {
		return err
	}

	return seedReports(ctx, deps.Repo)
}

// seedReports inserts the fixed sample set iff the store holds no
// reports, so the dashboard is non-empty on first run.
func seedReports(ctx context.Context, repo *repository.ReportRepository) error {
	existing, err := repo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, rep := range SampleReports() {
		rep := rep
		if err := repo.Create(ctx, &rep); err != nil {
			return err
		}
	}
	log.Printf("bootstrap: seeded %d sample reports", len(SampleReports()))
	return nil
}

// SampleReports returns the fixed first-run data set. Ids and
// timestamps are constants so the seeded list order is deterministic.
func SampleReports() []models.Report {
	return []models.Report{
		{
			ID:          "1755000005000",
			Title:       "Pothole on Elm Street",
			Description: "Deep pothole near the crosswalk, damaging car tires.",
			Type:        models.Infrastructure,
			Location:    "Elm Street & 4th Avenue",
			Status:      models.Pending,
			Timestamp:   1755000005000,
		},
		{
			ID:          "1755000004000",
			Title:       "Broken streetlight",
			Description: "The streetlight has been out for a week; the corner is very dark at night.",
			Type:        models.Safety,
			Location:    "Maple Road 12",
			Status:      models.InProgress,
			Timestamp:   1755000004000,
		},
		{
			ID:          "1755000003000",
			Title:       "Overflowing trash bins",
			Description: "Public bins at the park entrance have not been emptied in days.",
			Type:        models.Environment,
			Location:    "Riverside Park, north entrance",
			Status:      models.Pending,
			Timestamp:   1755000003000,
		},
		{
			ID:          "1755000002000",
			Title:       "Malfunctioning traffic signal",
			Description: "Signal stays red in all directions during the morning rush.",
			Type:        models.Traffic,
			Location:    "Main Street & Station Road",
			Status:      models.Resolved,
			Timestamp:   1755000002000,
		},
		{
			ID:          "1755000001000",
			Title:       "Library water fountain broken",
			Description: "The drinking fountain on the ground floor leaks constantly.",
			Type:        models.PublicServices,
			Location:    "Central Library",
			Status:      models.Pending,
			Timestamp:   1755000001000,
		},
	}
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"cityreport-be/errs"
	"cityreport-be/kv"
	"cityreport-be/models"
)

func newTestRepo() (*ReportRepository, *kv.Memory) {
	store := kv.NewMemory()
	return New(store), store
}

func sample(id string, ts int64) *models.Report {
	return &models.Report{
		ID:          id,
		Title:       "Pothole",
		Description: "Deep hole",
		Type:        models.Infrastructure,
		Location:    "Main St",
		Status:      models.Pending,
		Timestamp:   ts,
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo()

	rep := sample("1700000000000", 1700000000000)
	if err := repo.Create(ctx, rep); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetOne(ctx, rep.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got != *rep {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, rep)
	}
}

func TestGetOneNotFound(t *testing.T) {
	repo, _ := newTestRepo()

	_, err := repo.GetOne(context.Background(), "nope")
	var notFound *errs.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestListAllOrdering(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo()

	for _, ts := range []int64{1700000000100, 1700000000300, 1700000000200} {
		rep := sample(strconv.FormatInt(ts, 10), ts)
		if err := repo.Create(ctx, rep); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	reports, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(reports))
	}
	for i := 1; i < len(reports); i++ {
		if reports[i-1].Timestamp < reports[i].Timestamp {
			t.Fatalf("not sorted descending at %d: %d < %d", i, reports[i-1].Timestamp, reports[i].Timestamp)
		}
	}
}

func TestListAllUnwrapsEnvelope(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo()

	// A record written by an earlier version arrives wrapped in a
	// {"value": ...} envelope.
	inner := sample("111", 111)
	innerJSON, _ := json.Marshal(inner)
	wrapped, _ := json.Marshal(map[string]json.RawMessage{"value": innerJSON})
	if err := store.Set(ctx, "report:111", wrapped); err != nil {
		t.Fatalf("set: %v", err)
	}

	raw := sample("222", 222)
	if err := repo.Create(ctx, raw); err != nil {
		t.Fatalf("create: %v", err)
	}

	reports, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[0].ID != "222" || reports[1].ID != "111" {
		t.Fatalf("unexpected order: %s, %s", reports[0].ID, reports[1].ID)
	}
	if reports[1].Title != inner.Title {
		t.Fatalf("envelope not unwrapped: %+v", reports[1])
	}
}

func TestListAllFiltersInvalidEntries(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo()

	// Missing title, missing id, and non-JSON garbage must all be
	// skipped, not fail the listing.
	store.Set(ctx, "report:bad1", []byte(`{"id":"bad1"}`))
	store.Set(ctx, "report:bad2", []byte(`{"title":"no id"}`))
	store.Set(ctx, "report:bad3", []byte(`{{{`))

	if err := repo.Create(ctx, sample("333", 333)); err != nil {
		t.Fatalf("create: %v", err)
	}

	reports, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != "333" {
		t.Fatalf("expected only the valid report, got %+v", reports)
	}
}

func TestListAllMissingTimestampSortsLast(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo()

	store.Set(ctx, "report:old", []byte(`{"id":"old","title":"No timestamp"}`))
	if err := repo.Create(ctx, sample("444", 444)); err != nil {
		t.Fatalf("create: %v", err)
	}

	reports, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reports) != 2 || reports[1].ID != "old" {
		t.Fatalf("missing timestamp should sort last: %+v", reports)
	}
}

func TestCreateBumpsCollidingID(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo()

	first := sample("1700000000000", 1700000000000)
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	second := sample("1700000000000", 1700000000000)
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create duplicate: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("collision not resolved: both ids %s", first.ID)
	}
	if second.ID != "1700000000001" || second.Timestamp != 1700000000001 {
		t.Fatalf("unexpected bumped id/timestamp: %s/%d", second.ID, second.Timestamp)
	}

	reports, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo()

	rep := sample("555", 555)
	if err := repo.Create(ctx, rep); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.UpdateStatus(ctx, "555", models.Resolved)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.Resolved {
		t.Fatalf("status not updated: %s", updated.Status)
	}
	// Only status changes; timestamp stays put.
	if updated.Timestamp != rep.Timestamp || updated.Title != rep.Title {
		t.Fatalf("update touched immutable fields: %+v", updated)
	}

	got, err := repo.GetOne(ctx, "555")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.Resolved {
		t.Fatalf("update not persisted: %s", got.Status)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo, _ := newTestRepo()

	_, err := repo.UpdateStatus(context.Background(), "ghost", models.Resolved)
	var notFound *errs.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo()

	if err := repo.Create(ctx, sample("666", 666)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(ctx, "666"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "666"); err != nil {
		t.Fatalf("second delete: %v", err)
	}

	_, err := repo.GetOne(ctx, "666")
	var notFound *errs.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}
}

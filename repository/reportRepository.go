// Package repository maps report domain operations onto the key-value
// adapter. It exclusively owns the on-disk key scheme ("report:<id>");
// no other component reads or writes report keys directly.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"

	"cityreport-be/errs"
	"cityreport-be/kv"
	"cityreport-be/models"
)

const reportKeyPrefix = "report:"

type ReportRepository struct {
	store kv.Store
}

func New(store kv.Store) *ReportRepository {
	return &ReportRepository{store: store}
}

func reportKey(id string) string {
	return reportKeyPrefix + id
}

// decodeRecord normalizes the two read shapes the substrate can hand
// back: the raw report record, or a {"value": {...}} wrapper around
// it. The rest of the system only ever sees the domain record.
func decodeRecord(raw []byte) (models.Report, bool) {
	var rep models.Report
	if err := json.Unmarshal(raw, &rep); err == nil && rep.ID != "" {
		return rep, true
	}

	var envelope struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Value == nil {
		return models.Report{}, false
	}
	rep = models.Report{}
	if err := json.Unmarshal(envelope.Value, &rep); err != nil {
		return models.Report{}, false
	}
	return rep, true
}

// ListAll scans every report key, unwraps the stored values, drops
// structurally invalid entries and returns the records newest first.
// A missing timestamp sorts as 0; ties keep scan order.
func (r *ReportRepository) ListAll(ctx context.Context) ([]models.Report, error) {
	entries, err := r.store.Scan(ctx, reportKeyPrefix)
	if err != nil {
		return nil, errs.Storagef(err, "failed to scan reports")
	}

	reports := make([]models.Report, 0, len(entries))
	for _, entry := range entries {
		rep, ok := decodeRecord(entry.Value)
		if !ok || rep.ID == "" || rep.Title == "" {
			continue
		}
		reports = append(reports, rep)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Timestamp > reports[j].Timestamp
	})
	return reports, nil
}

// GetOne looks a report up by id.
func (r *ReportRepository) GetOne(ctx context.Context, id string) (*models.Report, error) {
	raw, err := r.store.Get(ctx, reportKey(id))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, errs.NotFoundf("report %s not found", id)
	}
	if err != nil {
		return nil, errs.Storagef(err, "failed to fetch report %s", id)
	}
	rep, ok := decodeRecord(raw)
	if !ok {
		return nil, errs.Storagef(nil, "corrupt record for report %s", id)
	}
	return &rep, nil
}

// Create persists a new report. The caller assigns id, timestamp and
// status; Create only guards against a same-millisecond id collision
// by bumping the candidate millisecond until the key is free.
func (r *ReportRepository) Create(ctx context.Context, rep *models.Report) error {
	for {
		_, err := r.store.Get(ctx, reportKey(rep.ID))
		if errors.Is(err, kv.ErrKeyNotFound) {
			break
		}
		if err != nil {
			return errs.Storagef(err, "failed to probe report key")
		}
		ms, parseErr := strconv.ParseInt(rep.ID, 10, 64)
		if parseErr != nil {
			return errs.Storagef(nil, "report id %s already exists", rep.ID)
		}
		ms++
		rep.ID = strconv.FormatInt(ms, 10)
		rep.Timestamp = ms
	}

	data, err := json.Marshal(rep)
	if err != nil {
		return errs.Storagef(err, "failed to encode report")
	}
	if err := r.store.Set(ctx, reportKey(rep.ID), data); err != nil {
		return errs.Storagef(err, "failed to persist report")
	}
	return nil
}

// UpdateStatus is a read-modify-write with no version check; two
// concurrent updates on the same report race and the last write wins.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id string, status models.ReportStatus) (*models.Report, error) {
	rep, err := r.GetOne(ctx, id)
	if err != nil {
		return nil, err
	}
	rep.Status = status

	data, err := json.Marshal(rep)
	if err != nil {
		return nil, errs.Storagef(err, "failed to encode report")
	}
	if err := r.store.Set(ctx, reportKey(id), data); err != nil {
		return nil, errs.Storagef(err, "failed to persist report")
	}
	return rep, nil
}

// Delete removes the key unconditionally; deleting an absent report is
// not an error here. The API layer pre-checks existence for its 404.
func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, reportKey(id)); err != nil {
		return errs.Storagef(err, "failed to delete report %s", id)
	}
	return nil
}

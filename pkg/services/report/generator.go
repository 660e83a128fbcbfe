// Package report orchestrates report-set generation: it batches the
// per-vessel fetch calls against the telemetry store, reconciles the
// results and assembles them in selection order.
package report

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/de-tools/vessel-atlas/pkg/models/domain"
	"github.com/de-tools/vessel-atlas/pkg/models/store"
	"github.com/de-tools/vessel-atlas/pkg/services/reconcile"
	"github.com/de-tools/vessel-atlas/pkg/store/telemetry"
)

var (
	// ErrEmptySelection is returned before any I/O when no vessels
	// were requested.
	ErrEmptySelection = errors.New("empty vessel selection")
	// ErrInvalidPeriod is returned for an analysis period outside the
	// supported 1-3 month range.
	ErrInvalidPeriod = errors.New("analysis period must be 1, 2 or 3 months")
	// ErrSelectionTooLarge bounds a single generation request.
	ErrSelectionTooLarge = errors.New("vessel selection exceeds the supported maximum")
	// ErrSourceUnavailable is surfaced when the telemetry endpoint is
	// unreachable for a whole batch. No partial report set is returned.
	ErrSourceUnavailable = errors.New("telemetry source unavailable")
)

const (
	// DefaultBatchSize bounds the number of round-trips to the query
	// endpoint; many vessels are grouped per call.
	DefaultBatchSize = 100
	// MaxSelection is the documented upper bound for one request.
	MaxSelection = 1200
)

// TelemetryStore is the slice of the query collaborator the generator
// depends on.
type TelemetryStore interface {
	FetchParticulars(ctx context.Context, vessels []string) ([]store.VesselParticulars, error)
	FetchHullSeries(ctx context.Context, vessels []string, start, end time.Time) ([]store.HullRecord, error)
	FetchEnginePerformance(ctx context.Context, vessels []string, start, end time.Time) ([]store.EngineRecord, error)
	FetchCIIRatings(ctx context.Context, vessels []string) ([]store.CIIRecord, error)
}

type Options struct {
	BatchSize int
	// SkipEmptyVessels drops vessels whose four groups are all absent.
	// Default is to always include them as zero-content rows.
	SkipEmptyVessels bool
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

type Generator struct {
	store TelemetryStore
	opts  Options
}

// NewGenerator creates a report generator over the given store.
func NewGenerator(telemetryStore TelemetryStore, opts Options) *Generator {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Generator{store: telemetryStore, opts: opts}
}

// batchResult accumulates what one batch of vessels fetched, plus any
// per-source query failures to surface as diagnostics.
type batchResult struct {
	particulars map[string]*store.VesselParticulars
	hull        map[string][]store.HullRecord
	engine      map[string][]store.EngineRecord
	cii         map[string][]store.CIIRecord
	sourceNotes []string
}

// BuildReportSet produces one report per requested vessel, in request
// order, for the given analysis period in months.
func (g *Generator) BuildReportSet(ctx context.Context, vessels []string, periodMonths int) (*domain.ReportSet, error) {
	if len(vessels) == 0 {
		return nil, ErrEmptySelection
	}
	if periodMonths < 1 || periodMonths > 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPeriod, periodMonths)
	}
	if len(vessels) > MaxSelection {
		return nil, fmt.Errorf("%w: %d > %d", ErrSelectionTooLarge, len(vessels), MaxSelection)
	}

	now := g.opts.Now()
	period := domain.TimePeriod{
		Start:  now.AddDate(0, -periodMonths, 0),
		End:    now,
		Months: periodMonths,
	}

	batches := chunk(vessels, g.opts.BatchSize)
	results := make([]*batchResult, len(batches))

	grp, grpCtx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		i, batch := i, batch
		grp.Go(func() error {
			res, err := g.fetchBatch(grpCtx, batch, period)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	batchIndex := make(map[string]*batchResult, len(vessels))
	for i, batch := range batches {
		for _, name := range batch {
			batchIndex[name] = results[i]
		}
	}

	set := &domain.ReportSet{
		ID:          uuid.NewString(),
		Period:      period,
		GeneratedAt: now,
		Reports:     make([]domain.VesselReport, 0, len(vessels)),
	}

	for _, name := range vessels {
		res := batchIndex[name]
		rep := reconcile.Reconcile(name, reconcile.Sources{
			Particulars: res.particulars[name],
			Hull:        res.hull[name],
			Engine:      res.engine[name],
			CII:         res.cii[name],
		}, period)
		rep.Notes = append(rep.Notes, res.sourceNotes...)

		if g.opts.SkipEmptyVessels && !rep.Hull.Present && !rep.Engine.Present && !rep.CII.Present {
			continue
		}
		set.Reports = append(set.Reports, rep)
	}

	zerolog.Ctx(ctx).Info().
		Str("report_set_id", set.ID).
		Int("vessels", len(vessels)).
		Int("period_months", periodMonths).
		Msg("report set generated")

	return set, nil
}

// fetchBatch issues the four source queries for one vessel batch
// concurrently. A transport failure aborts the batch as
// ErrSourceUnavailable; a rejected query from a single source degrades
// that source only and leaves a diagnostic note.
func (g *Generator) fetchBatch(ctx context.Context, batch []string, period domain.TimePeriod) (*batchResult, error) {
	res := &batchResult{
		particulars: make(map[string]*store.VesselParticulars),
		hull:        make(map[string][]store.HullRecord),
		engine:      make(map[string][]store.EngineRecord),
		cii:         make(map[string][]store.CIIRecord),
	}

	var mu sync.Mutex
	grp, grpCtx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		records, err := g.store.FetchParticulars(grpCtx, batch)
		if err != nil {
			return res.noteSourceFailure(&mu, "particulars", err)
		}
		mu.Lock()
		defer mu.Unlock()
		for i := range records {
			res.particulars[records[i].VesselName] = &records[i]
		}
		return nil
	})

	grp.Go(func() error {
		records, err := g.store.FetchHullSeries(grpCtx, batch, period.Start, period.End)
		if err != nil {
			return res.noteSourceFailure(&mu, "hull", err)
		}
		mu.Lock()
		defer mu.Unlock()
		for _, rec := range records {
			res.hull[rec.VesselName] = append(res.hull[rec.VesselName], rec)
		}
		return nil
	})

	grp.Go(func() error {
		records, err := g.store.FetchEnginePerformance(grpCtx, batch, period.Start, period.End)
		if err != nil {
			return res.noteSourceFailure(&mu, "engine", err)
		}
		mu.Lock()
		defer mu.Unlock()
		for _, rec := range records {
			res.engine[rec.VesselName] = append(res.engine[rec.VesselName], rec)
		}
		return nil
	})

	grp.Go(func() error {
		records, err := g.store.FetchCIIRatings(grpCtx, batch)
		if err != nil {
			return res.noteSourceFailure(&mu, "cii", err)
		}
		mu.Lock()
		defer mu.Unlock()
		for _, rec := range records {
			res.cii[rec.VesselName] = append(res.cii[rec.VesselName], rec)
		}
		return nil
	})

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// noteSourceFailure absorbs a query-level failure as a diagnostic and
// escalates everything else as a batch-level outage.
func (r *batchResult) noteSourceFailure(mu *sync.Mutex, source string, err error) error {
	var qErr *telemetry.QueryError
	if errors.As(err, &qErr) {
		mu.Lock()
		defer mu.Unlock()
		r.sourceNotes = append(r.sourceNotes,
			fmt.Sprintf("%s source query failed, group marked absent: %s", source, qErr.Message))
		return nil
	}
	return fmt.Errorf("%w: %s source: %v", ErrSourceUnavailable, source, err)
}

func chunk(vessels []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(vessels); start += size {
		end := start + size
		if end > len(vessels) {
			end = len(vessels)
		}
		batches = append(batches, vessels[start:end])
	}
	return batches
}

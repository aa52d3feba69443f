package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fanbe-group/leads-cli/internal/model"
	"github.com/fanbe-group/leads-cli/internal/store"
	"github.com/fanbe-group/leads-cli/internal/tabular"
)

// Config tunes an Importer.
type Config struct {
	// DefaultSource is recorded on leads whose rows carry no source column.
	DefaultSource string
	// InsertRate caps store writes per second. Zero or negative means
	// unlimited.
	InsertRate float64
	// Now supplies the batch run date. Defaults to time.Now.
	Now func() time.Time
}

// Importer drives the ingestion pipeline. Rows are processed strictly in
// file order; the in-batch duplicate check depends on every earlier row
// having reached a terminal state first.
type Importer struct {
	store   store.Store
	limiter *rate.Limiter
	cfg     Config
}

func New(st store.Store, cfg Config) *Importer {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	limit := rate.Inf
	if cfg.InsertRate > 0 {
		limit = rate.Limit(cfg.InsertRate)
	}
	return &Importer{
		store:   st,
		limiter: rate.NewLimiter(limit, 1),
		cfg:     cfg,
	}
}

// ImportFile reads and imports a CSV, TSV, or XLSX file.
func (imp *Importer) ImportFile(ctx context.Context, path string) (*model.ImportResult, error) {
	rows, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return imp.ImportRows(ctx, rows)
}

// Import parses raw CSV/TSV text and imports it.
func (imp *Importer) Import(ctx context.Context, text string) (*model.ImportResult, error) {
	rows, err := tabular.Parse(text)
	if err != nil {
		return nil, err
	}
	return imp.ImportRows(ctx, rows)
}

// ImportRows runs the pipeline over parsed rows and aggregates the outcome.
// Per-row failures are folded into the result and processing continues with
// the next row; only context cancellation aborts the run.
func (imp *Importer) ImportRows(ctx context.Context, rows []tabular.Row) (*model.ImportResult, error) {
	result := &model.ImportResult{}
	resolver := NewResolver(imp.store)
	runDate := imp.cfg.Now().Format("2006-01-02")
	synth := NewSynthesizer(imp.store, imp.cfg.DefaultSource, runDate)

	for i, src := range rows {
		// Header is row 1, so the first data row is row 2.
		raw := rowFromTabular(i+2, src)

		if errs := validateRow(raw); len(errs) > 0 {
			result.Errors++
			result.AddDetail(formatRowError(raw.Number, raw.Name, strings.Join(errs, "; ")))
			continue
		}

		norm := normalizeRow(raw)

		dup, err := resolver.IsDuplicate(ctx, norm.Phone)
		if err != nil {
			result.Errors++
			result.AddDetail(formatRowError(raw.Number, norm.Name, "duplicate check failed"))
			zap.L().Error("duplicate check failed",
				zap.Int("row", raw.Number),
				zap.String("phone", norm.Phone),
				zap.Error(err))
			continue
		}
		if dup {
			result.Duplicates++
			result.Errors++
			result.AddDetail(formatRowError(raw.Number, norm.Name,
				fmt.Sprintf("duplicate phone %s", norm.Phone)))
			continue
		}
		resolver.Accept(norm.Phone)

		recs, err := synth.Build(ctx, norm)
		if err != nil {
			result.Errors++
			result.AddDetail(formatRowError(raw.Number, norm.Name, eris.Cause(err).Error()))
			continue
		}

		if err := imp.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "importer: wait for insert slot")
		}
		lead, err := imp.store.InsertLead(ctx, recs.Lead)
		if err != nil {
			result.Errors++
			result.AddDetail(formatRowError(raw.Number, norm.Name, "failed to save lead"))
			zap.L().Error("lead insert failed",
				zap.Int("row", raw.Number),
				zap.String("phone", norm.Phone),
				zap.Error(err))
			continue
		}

		imp.insertDerived(ctx, lead, recs)
		result.Success++
	}

	return result, nil
}

// insertDerived persists the optional Call, SiteVisit, and Task records.
// Failures here never flip the row's outcome; the Lead is already saved.
func (imp *Importer) insertDerived(ctx context.Context, lead *model.Lead, recs *Records) {
	if recs.Call != nil {
		recs.Call.LeadID = lead.ID
		if err := imp.waitAnd(ctx, func() error { return imp.store.InsertCall(ctx, *recs.Call) }); err != nil {
			zap.L().Warn("call insert failed",
				zap.String("lead_id", lead.ID), zap.Error(err))
		}
	}
	if recs.SiteVisit != nil {
		recs.SiteVisit.LeadID = lead.ID
		if err := imp.waitAnd(ctx, func() error { return imp.store.InsertSiteVisit(ctx, *recs.SiteVisit) }); err != nil {
			zap.L().Warn("site visit insert failed",
				zap.String("lead_id", lead.ID), zap.Error(err))
		}
	}
	if recs.Task != nil {
		recs.Task.LeadID = lead.ID
		if err := imp.waitAnd(ctx, func() error { return imp.store.InsertTask(ctx, *recs.Task) }); err != nil {
			zap.L().Warn("task insert failed",
				zap.String("lead_id", lead.ID), zap.Error(err))
		}
	}
}

func (imp *Importer) waitAnd(ctx context.Context, insert func() error) error {
	if err := imp.limiter.Wait(ctx); err != nil {
		return err
	}
	return insert()
}

func formatRowError(number int, name, reason string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "unknown"
	}
	return fmt.Sprintf("Row %d (%s): %s", number, name, reason)
}

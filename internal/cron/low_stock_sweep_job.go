package cron

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/stockwatchhq/stockwatch-backend/internal/alerts"
	"github.com/stockwatchhq/stockwatch-backend/pkg/enums"
	"github.com/stockwatchhq/stockwatch-backend/pkg/logger"
	"github.com/stockwatchhq/stockwatch-backend/pkg/metrics"
)

// LowStockSweepJobParams configure the scheduled low-stock sweep.
type LowStockSweepJobParams struct {
	Logger      *logger.Logger
	CompanyRepo companyLister
	Reporter    lowStockReporter
	Metrics     *metrics.SweepJobMetrics
}

type companyLister interface {
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

type lowStockReporter interface {
	GetLowStockReport(ctx context.Context, companyID uuid.UUID, opts alerts.ReportOptions) (*alerts.ReportDTO, error)
}

// NewLowStockSweepJob constructs the low-stock sweep job. Running a report
// through the alert service also warms its cache, so the first dashboard
// request after a sweep hits warm data.
func NewLowStockSweepJob(params LowStockSweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.CompanyRepo == nil {
		return nil, fmt.Errorf("company repository required")
	}
	if params.Reporter == nil {
		return nil, fmt.Errorf("alert reporter required")
	}
	return &lowStockSweepJob{
		logg:        params.Logger,
		companyRepo: params.CompanyRepo,
		reporter:    params.Reporter,
		metrics:     params.Metrics,
	}, nil
}

type lowStockSweepJob struct {
	logg        *logger.Logger
	companyRepo companyLister
	reporter    lowStockReporter
	metrics     *metrics.SweepJobMetrics
}

func (j *lowStockSweepJob) Name() string { return "low-stock-sweep" }

func (j *lowStockSweepJob) Run(ctx context.Context) error {
	companyIDs, err := j.companyRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("list companies: %w", err)
	}

	var (
		errs      []error
		urgent    int
		warning   int
		companies int
	)
	for _, companyID := range companyIDs {
		report, err := j.reporter.GetLowStockReport(ctx, companyID, alerts.ReportOptions{})
		if err != nil {
			errs = append(errs, fmt.Errorf("company %s: %w", companyID, err))
			continue
		}
		companies++
		for _, alert := range report.Alerts {
			switch enums.AlertSeverity(alert.Severity) {
			case enums.AlertSeverityUrgent:
				urgent++
			default:
				warning++
			}
		}
	}

	if j.metrics != nil {
		j.metrics.SetAlertCount(enums.AlertSeverityUrgent.String(), urgent)
		j.metrics.SetAlertCount(enums.AlertSeverityWarning.String(), warning)
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"companies": companies,
		"urgent":    urgent,
		"warning":   warning,
		"failed":    len(errs),
	})
	j.logg.Info(logCtx, "low-stock sweep complete")

	return multierr.Combine(errs...)
}

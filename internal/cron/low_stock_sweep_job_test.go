package cron

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockwatchhq/stockwatch-backend/internal/alerts"
	"github.com/stockwatchhq/stockwatch-backend/pkg/enums"
	"github.com/stockwatchhq/stockwatch-backend/pkg/logger"
	"github.com/stockwatchhq/stockwatch-backend/pkg/metrics"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

type fakeCompanyLister struct {
	ids []uuid.UUID
	err error
}

func (f *fakeCompanyLister) ListIDs(context.Context) ([]uuid.UUID, error) {
	return f.ids, f.err
}

type fakeReporter struct {
	reports map[uuid.UUID]*alerts.ReportDTO
	errs    map[uuid.UUID]error
	calls   []uuid.UUID
}

func (f *fakeReporter) GetLowStockReport(_ context.Context, companyID uuid.UUID, _ alerts.ReportOptions) (*alerts.ReportDTO, error) {
	f.calls = append(f.calls, companyID)
	if err, ok := f.errs[companyID]; ok {
		return nil, err
	}
	if report, ok := f.reports[companyID]; ok {
		return report, nil
	}
	return &alerts.ReportDTO{CompanyID: companyID}, nil
}

func reportWith(companyID uuid.UUID, severities ...enums.AlertSeverity) *alerts.ReportDTO {
	report := &alerts.ReportDTO{CompanyID: companyID}
	for _, severity := range severities {
		report.Alerts = append(report.Alerts, alerts.AlertDTO{Severity: severity.String()})
	}
	report.TotalAlerts = len(report.Alerts)
	return report
}

func TestLowStockSweepJobRun(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	reporter := &fakeReporter{
		reports: map[uuid.UUID]*alerts.ReportDTO{
			first:  reportWith(first, enums.AlertSeverityUrgent, enums.AlertSeverityWarning),
			second: reportWith(second, enums.AlertSeverityWarning),
		},
	}
	collector := metrics.NewSweepJobMetrics(nil)

	job, err := NewLowStockSweepJob(LowStockSweepJobParams{
		Logger:      testLogger(),
		CompanyRepo: &fakeCompanyLister{ids: []uuid.UUID{first, second}},
		Reporter:    reporter,
		Metrics:     collector,
	})
	require.NoError(t, err)
	assert.Equal(t, "low-stock-sweep", job.Name())

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []uuid.UUID{first, second}, reporter.calls)
}

func TestLowStockSweepJobRun_partialFailure(t *testing.T) {
	healthy := uuid.New()
	broken := uuid.New()
	reporter := &fakeReporter{
		reports: map[uuid.UUID]*alerts.ReportDTO{healthy: reportWith(healthy)},
		errs:    map[uuid.UUID]error{broken: errors.New("boom")},
	}

	job, err := NewLowStockSweepJob(LowStockSweepJobParams{
		Logger:      testLogger(),
		CompanyRepo: &fakeCompanyLister{ids: []uuid.UUID{broken, healthy}},
		Reporter:    reporter,
	})
	require.NoError(t, err)

	err = job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), broken.String())
	// The healthy company is still swept.
	assert.Equal(t, []uuid.UUID{broken, healthy}, reporter.calls)
}

func TestLowStockSweepJobRun_listFailure(t *testing.T) {
	job, err := NewLowStockSweepJob(LowStockSweepJobParams{
		Logger:      testLogger(),
		CompanyRepo: &fakeCompanyLister{err: errors.New("db down")},
		Reporter:    &fakeReporter{},
	})
	require.NoError(t, err)

	require.Error(t, job.Run(context.Background()))
}

type recordingJob struct {
	name string
	runs int
	err  error
}

func (j *recordingJob) Name() string { return j.name }

func (j *recordingJob) Run(context.Context) error {
	j.runs++
	return j.err
}

type fakeLock struct {
	available bool
	releases  int
}

func (l *fakeLock) Acquire(context.Context) (bool, error) { return l.available, nil }

func (l *fakeLock) Release(context.Context) error {
	l.releases++
	return nil
}

func TestServiceRunCycle(t *testing.T) {
	job := &recordingJob{name: "probe"}
	lock := &fakeLock{available: true}
	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(job),
		Lock:     lock,
		Interval: time.Hour,
	})
	require.NoError(t, err)

	require.NoError(t, svc.runCycle(context.Background()))
	assert.Equal(t, 1, job.runs)
	assert.Equal(t, 1, lock.releases)
}

func TestServiceRunCycle_lockHeldElsewhere(t *testing.T) {
	job := &recordingJob{name: "probe"}
	lock := &fakeLock{available: false}
	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(job),
		Lock:     lock,
		Interval: time.Hour,
	})
	require.NoError(t, err)

	require.NoError(t, svc.runCycle(context.Background()))
	assert.Zero(t, job.runs)
	assert.Zero(t, lock.releases)
}

func TestServiceRunCycle_jobErrorDoesNotAbortCycle(t *testing.T) {
	failing := &recordingJob{name: "failing", err: errors.New("boom")}
	following := &recordingJob{name: "following"}
	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(failing, following),
		Lock:     &fakeLock{available: true},
		Interval: time.Hour,
	})
	require.NoError(t, err)

	require.NoError(t, svc.runCycle(context.Background()))
	assert.Equal(t, 1, failing.runs)
	assert.Equal(t, 1, following.runs)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry(nil, &recordingJob{name: "a"})
	registry.Register(&recordingJob{name: "b"})
	registry.Register(nil)

	jobs := registry.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "a", jobs[0].Name())
	assert.Equal(t, "b", jobs[1].Name())
}

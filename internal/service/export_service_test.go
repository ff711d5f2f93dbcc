package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"stockbook/internal/repository"
	"stockbook/internal/storage"
	"stockbook/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRenderer captures the arguments it was invoked with.
type recordingRenderer struct {
	calls    int
	fileName string
	symbol   string
	report   ReportData
	err      error
}

func (r *recordingRenderer) render(dir, fileName, _, symbol string, report ReportData, _ time.Time) (string, error) {
	r.calls++
	r.fileName = fileName
	r.symbol = symbol
	r.report = report
	if r.err != nil {
		return "", r.err
	}
	return filepath.Join(dir, fileName), nil
}

func buildExportSvc(t *testing.T, csv, pdf *recordingRenderer) (ExportService, context.CancelFunc) {
	t.Helper()
	gw := storage.NewMemory()
	inv, err := NewInventoryService(context.Background(),
		repository.NewCatalogRepository(gw),
		repository.NewLedgerRepository(gw))
	require.NoError(t, err)

	dispatcher := worker.NewDispatcher(8)
	svc := NewExportService(
		NewReportService(inv),
		NewSettingsService(repository.NewSettingsRepository(gw)),
		dispatcher,
		t.TempDir(),
		csv.render,
		pdf.render,
	)
	ctx, cancel := context.WithCancel(context.Background())
	dispatcher.Start(ctx, 1)
	return svc, cancel
}

func waitForStatus(t *testing.T, svc ExportService, id uuid.UUID, want ExportStatus) *ExportJob {
	t.Helper()
	var job *ExportJob
	require.Eventually(t, func() bool {
		j, err := svc.Get(context.Background(), id)
		if err != nil {
			return false
		}
		job = j
		return j.Status == want
	}, 2*time.Second, 10*time.Millisecond)
	return job
}

func TestExport_CSVCompletes(t *testing.T) {
	csv, pdf := &recordingRenderer{}, &recordingRenderer{}
	svc, cancel := buildExportSvc(t, csv, pdf)
	defer cancel()

	job, err := svc.Request(context.Background(), RangeMonth, ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, ExportPending, job.Status)

	done := waitForStatus(t, svc, job.ID, ExportCompleted)
	assert.Contains(t, done.FileName, "inventory_report_month_")
	assert.Contains(t, done.FileName, ".csv")
	assert.Equal(t, 1, csv.calls)
	assert.Equal(t, 0, pdf.calls)
	assert.Equal(t, RangeMonth, csv.report.Range)
	// default currency resolves to a symbol
	assert.Equal(t, "$", csv.symbol)
}

func TestExport_PDFRoutesToPDFRenderer(t *testing.T) {
	csv, pdf := &recordingRenderer{}, &recordingRenderer{}
	svc, cancel := buildExportSvc(t, csv, pdf)
	defer cancel()

	job, err := svc.Request(context.Background(), RangeAll, ExportPDF)
	require.NoError(t, err)

	done := waitForStatus(t, svc, job.ID, ExportCompleted)
	assert.Contains(t, done.FileName, ".pdf")
	assert.Equal(t, 0, csv.calls)
	assert.Equal(t, 1, pdf.calls)
}

func TestExport_RendererFailureMarksJobFailed(t *testing.T) {
	csv := &recordingRenderer{err: errors.New("disk full")}
	svc, cancel := buildExportSvc(t, csv, &recordingRenderer{})
	defer cancel()

	job, err := svc.Request(context.Background(), RangeWeek, ExportCSV)
	require.NoError(t, err)

	failed := waitForStatus(t, svc, job.ID, ExportFailed)
	assert.Equal(t, "disk full", failed.Error)
	assert.Empty(t, failed.FileName)
}

func TestExport_RequestValidation(t *testing.T) {
	svc, cancel := buildExportSvc(t, &recordingRenderer{}, &recordingRenderer{})
	defer cancel()
	ctx := context.Background()

	_, err := svc.Request(ctx, DateRange("quarter"), ExportCSV)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Request(ctx, RangeWeek, ExportFormat("xlsx"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExport_GetUnknownJob(t *testing.T) {
	svc, cancel := buildExportSvc(t, &recordingRenderer{}, &recordingRenderer{})
	defer cancel()

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrExportNotFound)
}

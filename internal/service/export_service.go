package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"stockbook/internal/worker"

	"github.com/google/uuid"
)

// JobTypeExportReport is the worker queue job kind for report exports.
const JobTypeExportReport = "export_report"

type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

type ExportStatus string

const (
	ExportPending   ExportStatus = "pending"
	ExportCompleted ExportStatus = "completed"
	ExportFailed    ExportStatus = "failed"
)

// ExportJob tracks one requested export through the worker pool.
type ExportJob struct {
	ID        uuid.UUID    `json:"id"`
	Range     DateRange    `json:"range"`
	Format    ExportFormat `json:"format"`
	Status    ExportStatus `json:"status"`
	FileName  string       `json:"fileName,omitempty"`
	Error     string       `json:"error,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Renderer writes one export artifact and returns its path. Concrete
// implementations live in internal/render; they are injected here so the
// engine side stays free of file-format concerns.
type Renderer func(dir, fileName, companyName, symbol string, report ReportData, generatedAt time.Time) (string, error)

// ExportService produces report files asynchronously. Requesting an export
// returns immediately with a pending job; rendering happens on the worker
// pool and the job is polled for completion.
type ExportService interface {
	Request(ctx context.Context, r DateRange, format ExportFormat) (*ExportJob, error)
	Get(ctx context.Context, id uuid.UUID) (*ExportJob, error)
}

type exportPayload struct {
	JobID string `json:"job_id"`
}

type exportService struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*ExportJob

	reports    ReportService
	settings   SettingsService
	dispatcher *worker.Dispatcher
	dir        string
	renderCSV  Renderer
	renderPDF  Renderer
	now        func() time.Time
}

func NewExportService(reports ReportService, settings SettingsService, dispatcher *worker.Dispatcher, dir string, renderCSV, renderPDF Renderer) ExportService {
	s := &exportService{
		jobs:       make(map[uuid.UUID]*ExportJob),
		reports:    reports,
		settings:   settings,
		dispatcher: dispatcher,
		dir:        dir,
		renderCSV:  renderCSV,
		renderPDF:  renderPDF,
		now:        time.Now,
	}
	dispatcher.Register(JobTypeExportReport, s.handle)
	return s
}

func (s *exportService) Request(_ context.Context, r DateRange, format ExportFormat) (*ExportJob, error) {
	if !ValidDateRange(r) {
		return nil, validationf("range", "must be one of week, month, all")
	}
	if format != ExportCSV && format != ExportPDF {
		return nil, validationf("format", "must be csv or pdf")
	}

	job := &ExportJob{
		ID:        uuid.New(),
		Range:     r,
		Format:    format,
		Status:    ExportPending,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.dispatcher.Enqueue(JobTypeExportReport, exportPayload{JobID: job.ID.String()}); err != nil {
		s.fail(job.ID, err)
		return nil, err
	}
	out := *job
	return &out, nil
}

func (s *exportService) Get(_ context.Context, id uuid.UUID) (*ExportJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrExportNotFound
	}
	out := *job
	return &out, nil
}

// handle runs on the worker pool.
func (s *exportService) handle(ctx context.Context, wj worker.Job) error {
	var payload exportPayload
	if err := json.Unmarshal(wj.Payload, &payload); err != nil {
		return fmt.Errorf("export: decode payload: %w", err)
	}
	id, err := uuid.Parse(payload.JobID)
	if err != nil {
		return fmt.Errorf("export: bad job id: %w", err)
	}

	s.mu.Lock()
	job, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("export: unknown job %s", id)
	}
	rng, format := job.Range, job.Format
	s.mu.Unlock()

	report, err := s.reports.Report(ctx, rng)
	if err != nil {
		s.fail(id, err)
		return err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.fail(id, err)
		return err
	}

	fileName := fmt.Sprintf("inventory_report_%s_%s.%s", rng, id, format)
	renderer := s.renderCSV
	if format == ExportPDF {
		renderer = s.renderPDF
	}
	if _, err := renderer(s.dir, fileName, settings.CompanyName, settings.CurrencySymbol, report, s.now()); err != nil {
		s.fail(id, err)
		return err
	}

	s.mu.Lock()
	job.Status = ExportCompleted
	job.FileName = fileName
	s.mu.Unlock()
	return nil
}

func (s *exportService) fail(id uuid.UUID, cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.Status = ExportFailed
		job.Error = cause.Error()
	}
}

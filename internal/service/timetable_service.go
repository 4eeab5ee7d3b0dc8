package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/limaJavier/classgrid/internal/dto"
	"github.com/limaJavier/classgrid/internal/models"
	appErrors "github.com/limaJavier/classgrid/pkg/errors"
	"github.com/limaJavier/classgrid/pkg/export"
	"github.com/limaJavier/classgrid/pkg/middleware/requestid"
	"github.com/limaJavier/classgrid/pkg/model"
)

type timetableStore interface {
	Save(ctx context.Context, record *models.TimetableRecord) error
	Get(ctx context.Context, id string) (*models.TimetableRecord, error)
	Delete(ctx context.Context, id string) error
}

// TimetableServiceConfig holds the engine defaults applied when a request leaves a field out.
type TimetableServiceConfig struct {
	Strategy     string
	Attempts     int
	Seed         int64
	ConflictMode string
}

// TimetableService generates timetables, keeps them in a store and serves edits, teacher views and exports.
type TimetableService struct {
	store     timetableStore
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       TimetableServiceConfig
	text      *export.TextExporter
	pdf       *export.PDFExporter
	now       func() time.Time
	mu        sync.Mutex
}

func NewTimetableService(store timetableStore, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg TimetableServiceConfig) *TimetableService {
	if validate == nil {
		validate = model.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = model.DefaultAttempts
	}
	return &TimetableService{
		store:     store,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		text:      export.NewTextExporter(),
		pdf:       export.NewPDFExporter(),
		now:       time.Now,
	}
}

//** Generation

func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.TimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}

	strategy, err := model.ParseStrategy(lo.CoalesceOrEmpty(req.Strategy, s.cfg.Strategy))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	mode, err := model.ParseConflictMode(lo.CoalesceOrEmpty(req.ConflictMode, s.cfg.ConflictMode))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	seed := s.cfg.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}
	if seed == 0 && strategy == model.RandomStrategy {
		seed = s.now().UnixNano()
	}
	if strategy == model.MatchingStrategy {
		seed = 0
	}

	params := model.Params{Attempts: lo.CoalesceOrEmpty(req.Attempts, s.cfg.Attempts), Mode: mode}
	timetabler, err := model.NewTimetabler(strategy, model.NewSource(seed), params)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	start := s.now()
	timetable, report, err := timetabler.Build(req.Input)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department input")
	}
	duration := time.Since(start)

	now := s.now().UTC()
	record := &models.TimetableRecord{
		ID:        uuid.NewString(),
		Strategy:  strategy,
		Seed:      seed,
		Input:     req.Input,
		Timetable: timetable,
		Report:    report,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store timetable")
	}

	s.metrics.ObserveGeneration(strategy, report, duration)
	logr := s.requestLogger(ctx)
	logr.Info("timetable generated",
		zap.String("id", record.ID),
		zap.String("strategy", string(strategy)),
		zap.Int64("seed", seed),
		zap.Int("sections", timetable.Sections()),
		zap.Int("requested", report.Requested()),
		zap.Int("placed", report.Placed()),
		zap.Int("unplaced", report.Unplaced()),
		zap.Duration("duration", duration),
	)
	for _, result := range report.Exhausted() {
		logr.Warn("demand exhausted",
			zap.String("id", record.ID),
			zap.String("kind", string(result.Kind)),
			zap.String("name", result.Name),
			zap.String("teacher", result.Teacher),
			zap.Int("requested", result.Requested),
			zap.Int("placed", result.Placed),
			zap.Int("draws", result.Draws),
		)
	}

	return toTimetableResponse(record), nil
}

func (s *TimetableService) Get(ctx context.Context, id string) (*dto.TimetableResponse, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTimetableResponse(record), nil
}

func (s *TimetableService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

//** Editing

// UpdateCell applies one manual edit; cells pinned by a static hour are reported back with Applied set to false.
func (s *TimetableService) UpdateCell(ctx context.Context, id string, req dto.UpdateCellRequest) (*dto.UpdateCellResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cell payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	section, day, period := *req.Section, *req.Day, *req.Period
	if section >= record.Timetable.Sections() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("section %d is out of range for %d classes", section, record.Timetable.Sections()))
	}

	applied := record.Timetable.UpdateCell(section, day, period, req.Value)
	s.metrics.ObserveCellEdit(applied)
	if applied {
		record.UpdatedAt = s.now().UTC()
		if err := s.store.Save(ctx, record); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store timetable")
		}
	} else {
		s.requestLogger(ctx).Info("locked cell left untouched",
			zap.String("id", id),
			zap.Int("section", section),
			zap.Int("day", day),
			zap.Int("period", period),
		)
	}

	return &dto.UpdateCellResponse{
		Applied: applied,
		Cell:    cellView(record.Timetable, section, day, period),
	}, nil
}

// requestLogger tags log lines with the id of the HTTP request being served, if any
func (s *TimetableService) requestLogger(ctx context.Context) *zap.Logger {
	if reqID := requestid.FromContext(ctx); reqID != "" {
		return s.logger.With(zap.String("request_id", reqID))
	}
	return s.logger
}

//** Views

func (s *TimetableService) TeacherSchedules(ctx context.Context, id string) ([]dto.TeacherScheduleView, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	names := model.TeacherNames(record.Input)
	schedules := model.ProjectTeacherSchedules(record.Timetable, names)
	return lo.Map(names, func(name string, _ int) dto.TeacherScheduleView {
		return dto.TeacherScheduleView{Name: name, Days: schedules[name]}
	}), nil
}

func (s *TimetableService) ExportCSV(ctx context.Context, id string) ([]byte, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := s.text.Render(record.Timetable)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export timetable")
	}
	return content, nil
}

func (s *TimetableService) ExportPDF(ctx context.Context, id string) ([]byte, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Timetable %s (%s)", record.ID, record.Strategy)
	content, err := s.pdf.Render(record.Timetable, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export timetable")
	}
	return content, nil
}

// ExportTeachersPDF renders one page per teacher, staff first and the department head last
func (s *TimetableService) ExportTeachersPDF(ctx context.Context, id string) ([]byte, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	names := model.TeacherNames(record.Input)
	if len(names) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("timetable %s has no teachers", id))
	}
	title := fmt.Sprintf("Teacher schedules %s", record.ID)
	content, err := s.pdf.RenderTeachers(model.ProjectTeacherSchedules(record.Timetable, names), names, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export teacher schedules")
	}
	return content, nil
}

func toTimetableResponse(record *models.TimetableRecord) *dto.TimetableResponse {
	timetable := record.Timetable
	sections := make([]dto.SectionView, 0, timetable.Sections())
	for section := range timetable.Sections() {
		view := dto.SectionView{Index: section, Name: model.SectionName(section)}
		for day := range model.Days {
			for period := range model.Periods {
				view.Days[day][period] = cellView(timetable, section, day, period)
			}
		}
		sections = append(sections, view)
	}

	report := record.Report
	verifier := model.NewMatchingTimetabler(model.Params{Mode: timetable.Mode})
	return &dto.TimetableResponse{
		ID:       record.ID,
		Strategy: record.Strategy,
		Seed:     record.Seed,
		Mode:     string(timetable.Mode),
		Sections: sections,
		Report: dto.ReportView{
			Strategy:  report.Strategy,
			Requested: report.Requested(),
			Placed:    report.Placed(),
			Unplaced:  report.Unplaced(),
			Complete:  report.Complete(),
			ByKind:    report.UnplacedBy(),
			Exhausted: report.Exhausted(),
		},
		Verified:  verifier.Verify(timetable, record.Input),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func cellView(timetable *model.Timetable, section, day, period int) dto.CellView {
	cell := timetable.Cell(section, day, period)
	return dto.CellView{
		Text:   cell.Text(),
		Kind:   cell.Kind,
		Locked: timetable.IsLocked(section, day, period),
	}
}

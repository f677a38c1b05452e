package usecase

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/metrics"
)

var whitespaceRunRegex = regexp.MustCompile(`\s+`)

// AssemblyExportServiceConfig holds configuration for the export service
type AssemblyExportServiceConfig struct {
	Constants domain.ConstructionConstants
	Defaults  AssemblyDefaults
}

// AssemblyExportService generates manufacturing assembly documents for stored jobs
type AssemblyExportService struct {
	jobs      domain.JobRepository
	archive   domain.DocumentArchive
	constants domain.ConstructionConstants
	defaults  AssemblyDefaults
	logger    *zap.Logger
}

// NewAssemblyExportService creates an export service. archive may be nil.
// Empty default labels fall back to DefaultAssemblyDefaults.
func NewAssemblyExportService(
	jobs domain.JobRepository,
	archive domain.DocumentArchive,
	config AssemblyExportServiceConfig,
	logger *zap.Logger,
) *AssemblyExportService {
	if logger == nil {
		logger = zap.NewNop()
	}

	builtin := DefaultAssemblyDefaults()
	defaults := config.Defaults
	defaults.FinishName = firstNonEmpty(defaults.FinishName, builtin.FinishName)
	defaults.HingeType = firstNonEmpty(defaults.HingeType, builtin.HingeType)
	defaults.DrawerType = firstNonEmpty(defaults.DrawerType, builtin.DrawerType)
	defaults.Status = firstNonEmpty(defaults.Status, builtin.Status)
	defaults.DeliveryMethod = firstNonEmpty(defaults.DeliveryMethod, builtin.DeliveryMethod)

	return &AssemblyExportService{
		jobs:      jobs,
		archive:   archive,
		constants: config.Constants,
		defaults:  defaults,
		logger:    logger.Named("assembly"),
	}
}

// Export reads a job in one store round trip and renders its assembly document.
// Archiving is best effort and never fails the export.
func (s *AssemblyExportService) Export(ctx context.Context, jobID string) (*domain.ExportResult, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, s.fail(jobID, domain.ErrJobIDRequired)
	}

	export, err := s.jobs.GetJobExport(ctx, jobID)
	if err != nil {
		return nil, s.fail(jobID, err)
	}

	constants, err := ResolveConstants(s.constants, export.Room.DimensionOverrides)
	if err != nil {
		return nil, s.fail(jobID, err)
	}

	doc := GenerateAssemblyDocument(AssemblyInput{
		Export:    *export,
		Constants: constants,
		Defaults:  s.defaults,
	})

	result := &domain.ExportResult{
		Filename: ExportFilename(export.Job),
		Document: doc.Content,
	}

	if s.archive != nil {
		if err := s.archive.StoreDocument(ctx, result.Filename+".xml", doc.Content); err != nil {
			s.logger.Warn("assembly document not archived",
				zap.String("job_id", jobID),
				zap.Error(err))
		} else {
			result.Archived = true
		}
	}

	metrics.AssemblyExports.WithLabelValues(metrics.StatusSuccess).Inc()
	metrics.AssemblyPartsDerived.Add(float64(doc.PartCount))

	s.logger.Info("assembly exported",
		zap.String("job_id", jobID),
		zap.String("filename", result.Filename),
		zap.Int("cabinets", len(export.Cabinets)),
		zap.Int("parts", doc.PartCount),
		zap.Int("hardware_lines", len(doc.Hardware)))

	return result, nil
}

func (s *AssemblyExportService) fail(jobID string, err error) error {
	metrics.AssemblyExports.WithLabelValues(metrics.StatusFailure).Inc()
	s.logger.Warn("assembly export failed", zap.String("job_id", jobID), zap.Error(err))
	return err
}

// ExportFilename builds the download name Job_<number>_<name>.
// The name is trimmed, then each inner whitespace run becomes one underscore.
func ExportFilename(job domain.Job) string {
	name := whitespaceRunRegex.ReplaceAllString(strings.TrimSpace(job.Name), "_")
	return "Job_" + job.JobNumber + "_" + name
}

// ResolveConstants overlays room-level overrides onto the configured constants.
// Keys use the JSON field names of ConstructionConstants; unknown keys are ignored.
func ResolveConstants(base domain.ConstructionConstants, overrides map[string]float64) (domain.ConstructionConstants, error) {
	resolved := base
	for key, value := range overrides {
		if field := constantField(&resolved, key); field != nil {
			*field = value
		}
	}
	if err := ValidateConstants(resolved); err != nil {
		return domain.ConstructionConstants{}, err
	}
	return resolved, nil
}

// ValidateConstants rejects negative or non-finite construction constants
func ValidateConstants(c domain.ConstructionConstants) error {
	for _, key := range constantKeys {
		value := *constantField(&c, key)
		if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%w: %s = %v", domain.ErrInvalidConstants, key, value)
		}
	}
	return nil
}

// constantKeys lists every construction constant in document order
var constantKeys = []string{
	"toeKickHeight", "baseHeight", "baseDepth", "wallHeight", "wallDepth", "tallHeight", "tallDepth",
	"benchtopThickness", "splashbackHeight", "doorGap", "drawerGap", "boardThickness", "shelfSetback",
}

func constantField(c *domain.ConstructionConstants, key string) *float64 {
	switch key {
	case "toeKickHeight":
		return &c.ToeKickHeight
	case "baseHeight":
		return &c.BaseHeight
	case "baseDepth":
		return &c.BaseDepth
	case "wallHeight":
		return &c.WallHeight
	case "wallDepth":
		return &c.WallDepth
	case "tallHeight":
		return &c.TallHeight
	case "tallDepth":
		return &c.TallDepth
	case "benchtopThickness":
		return &c.BenchtopThickness
	case "splashbackHeight":
		return &c.SplashbackHeight
	case "doorGap":
		return &c.DoorGap
	case "drawerGap":
		return &c.DrawerGap
	case "boardThickness":
		return &c.BoardThickness
	case "shelfSetback":
		return &c.ShelfSetback
	default:
		return nil
	}
}

package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sales-dashboard-api/internal/application/dto"
	"github.com/jhoicas/sales-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/sales-dashboard-api/pkg/logger"
)

// Recorder recibe el resultado de cada carga (métricas). Puede ser nil.
type Recorder interface {
	ObserveImport(inserted, skipped int, duration time.Duration, err error)
}

// Config origen y codificación del archivo de ventas.
type Config struct {
	Path     string
	Encoding string
}

// ImportUseCase carga el archivo de ventas en el almacén.
// No deduplica: cada ejecución inserta todas las filas de nuevo.
type ImportUseCase struct {
	repo     repository.CustomerSalesRepository
	cfg      Config
	log      *logger.Logger
	recorder Recorder
}

// NewImportUseCase construye el caso de uso. recorder puede ser nil.
func NewImportUseCase(repo repository.CustomerSalesRepository, cfg Config, log *logger.Logger, recorder Recorder) *ImportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{repo: repo, cfg: cfg, log: log.Named("importer"), recorder: recorder}
}

// Run lee y valida el archivo completo y luego inserta todas las filas en un solo lote.
// Cualquier error aborta la carga sin persistir filas.
func (uc *ImportUseCase) Run(ctx context.Context) (*dto.ImportReport, error) {
	start := time.Now()
	report := &dto.ImportReport{RunID: uuid.NewString(), Source: uc.cfg.Path}
	log := uc.log.With().Str("run_id", report.RunID).Str("source", report.Source).Logger()

	err := uc.run(ctx, report)
	report.DurationMS = time.Since(start).Milliseconds()
	if uc.recorder != nil {
		uc.recorder.ObserveImport(report.Inserted, report.Skipped, time.Since(start), err)
	}
	if err != nil {
		log.Error().Err(err).Msg("error cargando datos desde CSV")
		return nil, err
	}

	log.Info().
		Int("inserted", report.Inserted).
		Int("skipped", report.Skipped).
		Int64("duration_ms", report.DurationMS).
		Msg("carga de ventas completada")
	return report, nil
}

func (uc *ImportUseCase) run(ctx context.Context, report *dto.ImportReport) error {
	src, err := openSource(uc.cfg.Path, uc.cfg.Encoding)
	if err != nil {
		return err
	}
	defer src.Close()

	parsed, err := Parse(src)
	if err != nil {
		return fmt.Errorf("importer: %w", err)
	}
	report.Skipped = parsed.Skipped

	if err := uc.repo.InsertBatch(ctx, parsed.Records); err != nil {
		return fmt.Errorf("importer: %w", err)
	}
	report.Inserted = len(parsed.Records)
	return nil
}

// import carga el archivo de ventas en el almacén configurado y termina.
//
// Uso: go run ./cmd/import [ruta/archivo.csv]
// Sin argumento usa IMPORT_CSV_PATH. No deduplica: cada ejecución vuelve a insertar todas las filas.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jhoicas/sales-dashboard-api/internal/application/importer"
	"github.com/jhoicas/sales-dashboard-api/internal/infrastructure/storage"
	"github.com/jhoicas/sales-dashboard-api/pkg/config"
	"github.com/jhoicas/sales-dashboard-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if len(os.Args) > 1 {
		cfg.Import.CSVPath = os.Args[1]
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	ctx := context.Background()
	repo, closeStore, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacén: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	if err := repo.EnsureSchema(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Crear esquema: %v\n", err)
		os.Exit(1)
	}

	uc := importer.NewImportUseCase(repo, importer.Config{
		Path:     cfg.Import.CSVPath,
		Encoding: cfg.Import.Encoding,
	}, log, nil)
	report, err := uc.Run(ctx)
	if err != nil {
		closeStore()
		fmt.Fprintf(os.Stderr, "Importar: %v\n", err)
		os.Exit(1)
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	_ = out.Encode(report)
}

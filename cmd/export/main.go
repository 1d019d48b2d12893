package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/config"
	"github.com/ai-finance/finance-backend-go/internal/domain/export"
	"github.com/ai-finance/finance-backend-go/internal/pkg/database"
	"github.com/ai-finance/finance-backend-go/internal/pkg/storage"
	"github.com/ai-finance/finance-backend-go/internal/repository/postgresql"
	exportService "github.com/ai-finance/finance-backend-go/internal/service/export"
)

func main() {
	table := flag.String("table", "", "export a single table (employees, categories, expenses, payroll, alerts) to stdout")
	format := flag.String("format", "md", "format for -table: md, csv or xlsx")
	flag.Parse()

	if err := run(*table, *format); err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}
}

func run(table, format string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	store, err := storage.NewLocalStorage(cfg.Storage.ExportDir)
	if err != nil {
		return fmt.Errorf("init export storage: %w", err)
	}
	svc := exportService.NewExportService(postgresql.NewExportRepository(db), store)

	if table != "" {
		t, err := export.ParseTable(table)
		if err != nil {
			return err
		}
		f, err := export.ParseFormat(format)
		if err != nil {
			return err
		}
		file, err := svc.Export(ctx, t, f)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(file.Data)
		return err
	}

	paths, err := svc.ExportAll(ctx)
	if err != nil {
		return err
	}
	slog.Info("export completed", "dir", cfg.Storage.ExportDir, "files", len(paths))
	return nil
}

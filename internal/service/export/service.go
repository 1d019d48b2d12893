package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/ai-finance/finance-backend-go/internal/domain/export"
	"github.com/ai-finance/finance-backend-go/internal/pkg/storage"
)

type ExportServiceImpl struct {
	repo  export.Repository
	store storage.FileStorage
}

// NewExportService creates the export service. store may be nil when only
// single-table downloads are served.
func NewExportService(repo export.Repository, store storage.FileStorage) *ExportServiceImpl {
	return &ExportServiceImpl{repo: repo, store: store}
}

var _ export.Service = (*ExportServiceImpl)(nil)

func (s *ExportServiceImpl) Export(ctx context.Context, table export.Table, format export.Format) (export.File, error) {
	ds, err := s.load(ctx, table)
	if err != nil {
		return export.File{}, err
	}

	var data []byte
	switch format {
	case export.FormatMarkdown:
		data, err = renderMarkdown(ds)
	case export.FormatCSV:
		data, err = renderCSV(ds)
	case export.FormatXLSX:
		data, err = renderXLSX(ds)
	default:
		return export.File{}, export.ErrUnknownFormat
	}
	if err != nil {
		return export.File{}, fmt.Errorf("failed to render %s as %s: %w", table, format, err)
	}

	return export.File{
		Name:        fmt.Sprintf("%s.%s", table, format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

func (s *ExportServiceImpl) ExportAll(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, fmt.Errorf("export storage is not configured")
	}

	var paths []string
	for _, table := range export.AllTables() {
		for _, format := range export.AllFormats() {
			file, err := s.Export(ctx, table, format)
			if err != nil {
				return paths, err
			}

			stored, err := s.store.Upload(ctx, bytes.NewReader(file.Data), path.Join(string(format), file.Name), file.ContentType)
			if err != nil {
				return paths, fmt.Errorf("failed to store %s: %w", file.Name, err)
			}
			slog.Info("table exported", "table", table, "format", format, "path", stored)
			paths = append(paths, stored)
		}
	}
	return paths, nil
}

func (s *ExportServiceImpl) load(ctx context.Context, table export.Table) (export.Dataset, error) {
	var (
		rows any
		err  error
	)
	switch table {
	case export.TableEmployees:
		rows, err = s.repo.Employees(ctx)
	case export.TableCategories:
		rows, err = s.repo.Categories(ctx)
	case export.TableExpenses:
		rows, err = s.repo.Expenses(ctx)
	case export.TablePayroll:
		rows, err = s.repo.Payroll(ctx)
	case export.TableAlerts:
		rows, err = s.repo.Alerts(ctx)
	default:
		return export.Dataset{}, export.ErrUnknownTable
	}
	if err != nil {
		return export.Dataset{}, err
	}
	return export.Dataset{Table: table, Rows: rows}, nil
}

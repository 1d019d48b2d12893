package export

import "context"

type Service interface {
	// Export renders a single table in the requested format.
	Export(ctx context.Context, table Table, format Format) (File, error)
	// ExportAll writes every table in every format to file storage and
	// returns the stored paths.
	ExportAll(ctx context.Context) ([]string, error)
}

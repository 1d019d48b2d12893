package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ai-finance/finance-backend-go/internal/domain/alert"
	"github.com/ai-finance/finance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type alertRepository struct {
	db *database.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *database.DB) alert.Repository {
	return &alertRepository{db: db}
}

// Create inserts an alert, skipping it when the reference already exists
func (r *alertRepository) Create(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO alerts (id, type, message, severity, reference, is_resolved)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		ON CONFLICT (reference) DO NOTHING
		RETURNING id, type, message, severity, reference, is_resolved, created_at
	`

	var created alert.Alert
	err := q.QueryRow(ctx, query, a.ID, a.Type, a.Message, a.Severity, a.Reference).Scan(
		&created.ID, &created.Type, &created.Message, &created.Severity,
		&created.Reference, &created.IsResolved, &created.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return alert.Alert{}, alert.ErrDuplicateAlert
		}
		return alert.Alert{}, fmt.Errorf("failed to create alert: %w", err)
	}

	return created, nil
}

func (r *alertRepository) List(ctx context.Context, filter alert.AlertFilter) ([]alert.Alert, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, type, message, severity, reference, is_resolved, created_at FROM alerts`
	args := []interface{}{}
	if filter.UnresolvedOnly {
		query += ` WHERE is_resolved = FALSE`
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT $1`
		args = append(args, filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := []alert.Alert{}
	for rows.Next() {
		var a alert.Alert
		if err := rows.Scan(&a.ID, &a.Type, &a.Message, &a.Severity, &a.Reference, &a.IsResolved, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *alertRepository) Resolve(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var resolved bool
	err := q.QueryRow(ctx, `
		UPDATE alerts SET is_resolved = TRUE
		WHERE id = $1
		RETURNING (SELECT is_resolved FROM alerts WHERE id = $1)
	`, id).Scan(&resolved)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return alert.ErrAlertNotFound
		}
		return fmt.Errorf("failed to resolve alert: %w", err)
	}
	if resolved {
		return alert.ErrAlreadyResolved
	}
	return nil
}

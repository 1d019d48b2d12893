package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// TestMain connects to TEST_DATABASE_URL and migrates it. Without it every
// test in this package is skipped.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		fmt.Println("TEST_DATABASE_URL not set, skipping repository tests")
		os.Exit(0)
	}

	if err := database.RunMigrations(dsn); err != nil {
		fmt.Println("failed to migrate test database:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 5, MinConns: 1})
	cancel()
	if err != nil {
		fmt.Println("failed to connect to test database:", err)
		os.Exit(1)
	}
	testDB = db

	code := m.Run()
	testDB.Close()
	os.Exit(code)
}

// truncateAll removes all rows so each test starts from an empty schema
func truncateAll(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec(context.Background(),
		"TRUNCATE TABLE alerts, payroll, expenses, categories, employees RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TheRightGift/coolpayServer/internal/db"
)

func testEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// setupTestDB connects to the database named by the usual DB_* environment
// variables. Tests that need one are skipped when no database is reachable.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		testEnv("DB_HOST", "localhost"),
		testEnv("DB_PORT", "5432"),
		testEnv("DB_USER", "postgres"),
		testEnv("DB_PASSWORD", "postgres"),
		testEnv("DB_NAME", "coolpay_test"),
	)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	database := db.NewTestDB(sqlDB)
	runMigrations(t, database)

	return database
}

func runMigrations(t *testing.T, database *db.DB) {
	t.Helper()

	migrationPath := filepath.Join("..", "..", "internal", "db", "migrations", "000001_init.up.sql")
	sqlBytes, err := os.ReadFile(migrationPath) // #nosec G304
	if err != nil {
		t.Fatalf("failed to read migration file: %v", err)
	}

	if _, err := database.ExecContext(context.Background(), string(sqlBytes)); err != nil {
		t.Logf("migration execution completed (tables may already exist)")
	}
}

func cleanupTestDB(t *testing.T, database *db.DB) {
	t.Helper()
	if err := database.Close(); err != nil {
		log.Printf("failed to close test database: %v", err)
	}
}

func truncateTables(t *testing.T, database *db.DB) {
	t.Helper()

	tables := []string{"transactions", "payment_links", "bank_details", "wallets", "users"}
	for _, table := range tables {
		if _, err := database.ExecContext(context.Background(), "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}

func seedUserWithWallet(t *testing.T, database *db.DB, name, email string) (userID, walletID int64) {
	t.Helper()
	ctx := context.Background()

	err := database.QueryRowContext(ctx,
		`INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`,
		name, email,
	).Scan(&userID)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	err = database.QueryRowContext(ctx,
		`INSERT INTO wallets (user_id, balance) VALUES ($1, 0) RETURNING id`,
		userID,
	).Scan(&walletID)
	if err != nil {
		t.Fatalf("failed to seed wallet: %v", err)
	}

	return userID, walletID
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// createStatements defines the four record sets. Identifiers are
// auto-increment so "most recent N" scans can order by id descending.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		role TEXT NOT NULL,
		department TEXT NOT NULL,
		performance DOUBLE PRECISION NOT NULL,
		tenure INTEGER NOT NULL,
		password_hash TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS manufacturing (
		id SERIAL PRIMARY KEY,
		date TEXT NOT NULL,
		line_id TEXT NOT NULL,
		throughput INTEGER NOT NULL,
		downtime_minutes INTEGER NOT NULL,
		defect_rate DOUBLE PRECISION NOT NULL,
		energy_consumption DOUBLE PRECISION NOT NULL,
		maintenance_cost DOUBLE PRECISION NOT NULL,
		shift_id TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id SERIAL PRIMARY KEY,
		date TEXT NOT NULL,
		product_id TEXT NOT NULL,
		region TEXT NOT NULL,
		units_sold INTEGER NOT NULL,
		revenue DOUBLE PRECISION NOT NULL,
		margin DOUBLE PRECISION NOT NULL,
		profit DOUBLE PRECISION NOT NULL,
		customer_segment TEXT NOT NULL,
		lead_source TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS field (
		id SERIAL PRIMARY KEY,
		incident_id TEXT NOT NULL,
		date TEXT NOT NULL,
		product_id TEXT NOT NULL,
		region TEXT NOT NULL,
		severity TEXT NOT NULL,
		description TEXT NOT NULL,
		resolution_time_hours DOUBLE PRECISION NOT NULL,
		customer_satisfaction INTEGER NOT NULL
	)`,
}

var tableNames = []string{"users", "manufacturing", "sales", "field"}

// CreateSchema creates the four record tables if they do not exist.
func CreateSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range createStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// DropSchema drops the four record tables.
func DropSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, name := range tableNames {
		if _, err := db.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, name)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", name, err)
		}
	}
	return nil
}

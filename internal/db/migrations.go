package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS current_positions (
		asset_id VARCHAR(64) PRIMARY KEY,
		latitude BIGINT NOT NULL,
		longitude BIGINT NOT NULL,
		altitude BIGINT NOT NULL,
		timestamp BIGINT NOT NULL,
		speed BIGINT NOT NULL,
		heading BIGINT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS position_history (
		asset_id VARCHAR(64) NOT NULL,
		slot_index INTEGER NOT NULL,
		latitude BIGINT NOT NULL,
		longitude BIGINT NOT NULL,
		altitude BIGINT NOT NULL,
		timestamp BIGINT NOT NULL,
		speed BIGINT NOT NULL,
		heading BIGINT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (asset_id, slot_index)
	);`,
	`CREATE TABLE IF NOT EXISTS tracker_states (
		asset_id VARCHAR(64) PRIMARY KEY,
		cursor INTEGER NOT NULL,
		count INTEGER NOT NULL,
		last_timestamp BIGINT NOT NULL,
		next_violation_id BIGINT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS boundaries (
		asset_id VARCHAR(64) NOT NULL,
		boundary_id VARCHAR(64) NOT NULL,
		center_lat BIGINT NOT NULL,
		center_lon BIGINT NOT NULL,
		radius BIGINT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (asset_id, boundary_id)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_boundaries_asset_active ON boundaries (asset_id, active);`,
	`CREATE TABLE IF NOT EXISTS violations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		asset_id VARCHAR(64) NOT NULL,
		violation_id BIGINT NOT NULL,
		boundary_id VARCHAR(64) NOT NULL,
		latitude BIGINT NOT NULL,
		longitude BIGINT NOT NULL,
		timestamp BIGINT NOT NULL,
		distance_exceeded BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_asset_violation ON violations (asset_id, violation_id);`,
	`CREATE TABLE IF NOT EXISTS fleet_managers (
		identity VARCHAR(128) PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS authorized_devices (
		identity VARCHAR(128) PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS owner_state (
		id INTEGER PRIMARY KEY,
		identity VARCHAR(128) NOT NULL,
		version BIGINT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`INSERT INTO owner_state (id, identity, version)
		SELECT 1, COALESCE(current_setting('tracking.initial_owner', true), 'owner'), 0
		WHERE NOT EXISTS (SELECT 1 FROM owner_state WHERE id = 1);`,
}

// RunMigrations executes the statement list in order. Every statement is
// idempotent so restarts are safe.
func RunMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

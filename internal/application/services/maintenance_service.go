package services

import (
	"context"
	"strings"
)

// DatabaseFile is the live database that can be copied out and back
type DatabaseFile interface {
	Backup(ctx context.Context, path string) (string, error)
	Restore(ctx context.Context, path string) error
}

// MaintenanceService backs up and restores the database file
type MaintenanceService struct {
	db DatabaseFile
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(db DatabaseFile) *MaintenanceService {
	return &MaintenanceService{db: db}
}

// Backup writes a consistent copy of the database to path, or to a
// timestamped file in the backup directory when path is blank. It returns
// the path written.
func (s *MaintenanceService) Backup(ctx context.Context, path string) (_ string, err error) {
	ctx, done := track(ctx, "MaintenanceService.Backup")
	defer done(&err)

	return s.db.Backup(ctx, strings.TrimSpace(path))
}

// Restore replaces the database with the backup at path and reconnects
func (s *MaintenanceService) Restore(ctx context.Context, path string) (err error) {
	ctx, done := track(ctx, "MaintenanceService.Restore")
	defer done(&err)

	return s.db.Restore(ctx, strings.TrimSpace(path))
}

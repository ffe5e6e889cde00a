package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/mattn/go-sqlite3"

	"github.com/CoderFake/healthcare-system/internal/infrastructure/observability"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
	"github.com/CoderFake/healthcare-system/pkg/retry"
)

// DefaultBackupPath names a timestamped backup inside dir
func DefaultBackupPath(dir string, now time.Time) string {
	return filepath.Join(dir, "backup_"+now.Format("20060102150405")+".db")
}

// Backup writes a consistent copy of the database to path and returns it.
// An empty path selects a timestamped file in the configured backup directory.
func (c *Client) Backup(ctx context.Context, path string) (string, error) {
	if c.cfg == nil {
		return "", apperrors.NewInternalError("backup needs a file-backed client", nil)
	}
	if path == "" {
		path = DefaultBackupPath(c.cfg.BackupDir, time.Now())
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", apperrors.NewDataAccessError("failed to create backup directory", err)
		}
	}
	// VACUUM INTO refuses to overwrite
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", apperrors.NewDataAccessError("failed to replace existing backup", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	start := time.Now()
	if err := c.vacuumInto(ctx, path); err != nil {
		return "", apperrors.NewDataAccessError("backup failed", err)
	}
	c.observe(ctx, "backup", "", start)

	observability.LoggerFromContext(ctx).Info().Str("path", path).Msg("database backed up")
	return path, nil
}

// vacuumInto snapshots the database into path. The snapshot only reads the
// live file, so it is retried while another process holds the write lock.
func (c *Client) vacuumInto(ctx context.Context, path string) error {
	return retry.DoWithLog(ctx, retry.LockConfig(IsBusy), func() error {
		_, err := c.db.ExecContext(ctx, "VACUUM INTO ?", path)
		return err
	}, func(attempt int, err error, next time.Duration) {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Int("attempt", attempt).Dur("retry_in", next).Msg("database busy, retrying backup")
	})
}

// IsBusy reports whether err comes from a lock held by another connection
func IsBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

// Restore replaces the database file with the backup at path.
// The live connection is released first and re-established afterwards; when the
// copy or reopen fails the original file is reopened and the error is returned.
func (c *Client) Restore(ctx context.Context, path string) error {
	if c.cfg == nil {
		return apperrors.NewInternalError("restore needs a file-backed client", nil)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperrors.NewNotFoundError("backup file not found: " + path)
		}
		return apperrors.NewDataAccessError("cannot read backup file", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Close(); err != nil {
		return apperrors.NewDataAccessError("failed to release connection", err)
	}

	restoreErr := c.replaceFile(path)
	if restoreErr == nil {
		db, err := openDB(c.cfg)
		if err == nil {
			c.setDB(db)
			observability.LoggerFromContext(ctx).Info().Str("path", path).Msg("database restored")
			return nil
		}
		restoreErr = err
	}

	// bring the previous handle back so the caller can keep working
	db, err := openDB(c.cfg)
	if err != nil {
		c.closed = true
		return apperrors.NewDataAccessError("restore failed and database could not be reopened",
			errors.Join(restoreErr, err))
	}
	c.setDB(db)
	return apperrors.NewDataAccessError("restore failed", restoreErr)
}

func (c *Client) setDB(db *sql.DB) {
	c.db = db
	c.gdb = goqu.New(Dialect, db)
	c.closed = false
}

func (c *Client) replaceFile(src string) error {
	srcAbs, _ := filepath.Abs(src)
	dstAbs, _ := filepath.Abs(c.cfg.File)
	if srcAbs == dstAbs {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := c.cfg.File + ".restore"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, c.cfg.File)
}

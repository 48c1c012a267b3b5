package migration

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/muhammadchandra19/stockmarket/pkg/postgresql"
)

// Migration represents a database migration
type Migration struct {
	ID        string
	Name      string
	Timestamp time.Time
	UpSQL     string
	DownSQL   string
}

// Runner applies the SQL migrations found in a file system.
type Runner struct {
	client    postgresql.PostgreSQLClient
	files     fs.FS
	schema    string
	tableName string
	logger    logger.Interface
}

// Config for migration runner
type Config struct {
	Schema    string // PostgreSQL schema name (default: "public")
	TableName string // Migration table name (default: "schema_migrations")
}

// NewRunner creates a new migration runner reading *.up.sql and *.down.sql from files.
func NewRunner(client postgresql.PostgreSQLClient, files fs.FS, config Config, log logger.Interface) *Runner {
	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.TableName == "" {
		config.TableName = "schema_migrations"
	}

	return &Runner{
		client:    client,
		files:     files,
		schema:    config.Schema,
		tableName: config.TableName,
		logger:    log,
	}
}

// EnsureMigrationTable creates the migration table if it doesn't exist
func (r *Runner) EnsureMigrationTable(ctx context.Context) error {
	createTableSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (id VARCHAR(255) PRIMARY KEY, name VARCHAR(255) NOT NULL, applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW())`,
		r.schema, r.tableName)

	if _, err := r.client.Exec(ctx, createTableSQL); err != nil {
		return errors.NewTracer("failed to create migration table").Wrap(err)
	}
	return nil
}

// GetAppliedMigrations returns a map of applied migration IDs
func (r *Runner) GetAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	applied := make(map[string]bool)

	query := fmt.Sprintf("SELECT id FROM %s.%s ORDER BY applied_at", r.schema, r.tableName)
	rows, err := r.client.Query(ctx, query)
	if err != nil {
		return nil, errors.NewTracer("failed to read applied migrations").Wrap(err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.NewTracer("failed to scan applied migration").Wrap(err)
		}
		applied[id] = true
	}

	return applied, rows.Err()
}

// LoadMigrations loads every migration, ordered by file name.
func (r *Runner) LoadMigrations() ([]Migration, error) {
	upFiles, err := fs.Glob(r.files, "*.up.sql")
	if err != nil {
		return nil, err
	}

	sort.Strings(upFiles)

	migrations := make([]Migration, 0, len(upFiles))
	for _, upFile := range upFiles {
		migration, err := r.parseMigrationFiles(upFile)
		if err != nil {
			return nil, errors.NewTracerf("failed to parse migration %s", upFile).Wrap(err)
		}
		migrations = append(migrations, migration)
	}

	return migrations, nil
}

// parseMigrationFiles parses UP and DOWN migration files
func (r *Runner) parseMigrationFiles(upFilePath string) (Migration, error) {
	upContent, err := fs.ReadFile(r.files, upFilePath)
	if err != nil {
		return Migration{}, err
	}

	id := strings.TrimSuffix(path.Base(upFilePath), ".up.sql")
	downFilePath := strings.TrimSuffix(upFilePath, ".up.sql") + ".down.sql"

	// file names are YYYYMMDDHHMMSS_name
	timestampStr, name, ok := strings.Cut(id, "_")
	if !ok {
		name = id
	}

	timestamp, err := time.Parse("20060102150405", timestampStr)
	if err != nil {
		timestamp = time.Unix(0, 0)
	}

	var downSQL string
	if downContent, err := fs.ReadFile(r.files, downFilePath); err == nil {
		downSQL = strings.TrimSpace(string(downContent))
	}

	return Migration{
		ID:        id,
		Name:      name,
		Timestamp: timestamp,
		UpSQL:     strings.TrimSpace(string(upContent)),
		DownSQL:   downSQL,
	}, nil
}

// MigrateUp applies pending migrations, at most steps of them when steps > 0.
func (r *Runner) MigrateUp(ctx context.Context, steps int) error {
	if err := r.EnsureMigrationTable(ctx); err != nil {
		return err
	}

	migrations, err := r.LoadMigrations()
	if err != nil {
		return err
	}

	applied, err := r.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}

	var toApply []Migration
	for _, migration := range migrations {
		if !applied[migration.ID] {
			toApply = append(toApply, migration)
		}
	}

	if steps > 0 && len(toApply) > steps {
		toApply = toApply[:steps]
	}

	for _, migration := range toApply {
		if migration.UpSQL == "" {
			r.logger.WarnContext(ctx, "No UP SQL found for migration", logger.NewField("migration", migration.ID))
			continue
		}

		if _, err := r.client.Exec(ctx, migration.UpSQL); err != nil {
			return errors.NewTracerf("failed to apply migration %s", migration.ID).Wrap(err)
		}

		recordSQL := fmt.Sprintf("INSERT INTO %s.%s (id, name, applied_at) VALUES ($1, $2, NOW())", r.schema, r.tableName)
		if _, err := r.client.Exec(ctx, recordSQL, migration.ID, migration.Name); err != nil {
			return errors.NewTracerf("failed to record migration %s", migration.ID).Wrap(err)
		}

		r.logger.InfoContext(ctx, "Applied migration", logger.NewField("migration", migration.ID))
	}

	return nil
}

// MigrateDown reverts the last steps applied migrations.
func (r *Runner) MigrateDown(ctx context.Context, steps int) error {
	if steps <= 0 {
		return errors.NewTracer("steps must be greater than 0 for down migrations")
	}

	migrations, err := r.LoadMigrations()
	if err != nil {
		return err
	}

	applied, err := r.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}

	var toRevert []Migration
	for i := len(migrations) - 1; i >= 0 && len(toRevert) < steps; i-- {
		if applied[migrations[i].ID] {
			toRevert = append(toRevert, migrations[i])
		}
	}

	for _, migration := range toRevert {
		if migration.DownSQL == "" {
			return errors.NewTracerf("no DOWN SQL found for migration %s", migration.ID)
		}

		if _, err := r.client.Exec(ctx, migration.DownSQL); err != nil {
			return errors.NewTracerf("failed to revert migration %s", migration.ID).Wrap(err)
		}

		removeSQL := fmt.Sprintf("DELETE FROM %s.%s WHERE id = $1", r.schema, r.tableName)
		if _, err := r.client.Exec(ctx, removeSQL, migration.ID); err != nil {
			return errors.NewTracerf("failed to unrecord migration %s", migration.ID).Wrap(err)
		}

		r.logger.InfoContext(ctx, "Reverted migration", logger.NewField("migration", migration.ID))
	}

	return nil
}

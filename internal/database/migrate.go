package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"quizdeck/internal/config"
	"quizdeck/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrator applies the embedded schema migrations.
type Migrator interface {
	// Up applies every pending migration.
	Up() error
	// Down rolls back steps migrations; steps <= 0 rolls back all of them.
	Down(steps int) error
	// Version returns the current schema version; 0 means no migration applied.
	Version() (version uint, dirty bool, err error)
}

// NewMigrator returns a migrator for db. postgres and sqlite3 use
// golang-migrate; oracle uses the embedded statement runner.
func NewMigrator(db *sqlx.DB, driver string) (Migrator, error) {
	sub, err := fs.Sub(migrationsFS, path.Join("migrations", driver))
	if err != nil {
		return nil, fmt.Errorf("no migrations for driver %q: %w", driver, err)
	}

	var instance migratedb.Driver
	switch driver {
	case config.DriverPostgres:
		instance, err = migratepg.WithInstance(db.DB, &migratepg.Config{})
	case config.DriverSQLite:
		instance, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	case config.DriverOracle:
		files, err := parseMigrations(sub)
		if err != nil {
			return nil, err
		}
		return &statementMigrator{db: db, migrations: files}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate driver: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, driver, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return &golangMigrator{m: m}, nil
}

type golangMigrator struct {
	m *migrate.Migrate
}

func (g *golangMigrator) Up() error {
	if err := g.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (g *golangMigrator) Down(steps int) error {
	var err error
	if steps <= 0 {
		err = g.m.Down()
	} else {
		err = g.m.Steps(-steps)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (g *golangMigrator) Version() (uint, bool, error) {
	v, dirty, err := g.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// migrationFile is one numbered migration with its up and down scripts.
type migrationFile struct {
	Version uint
	Name    string
	Up      string
	Down    string
}

// parseMigrations reads NNN_name.up.sql / NNN_name.down.sql pairs from fsys,
// sorted by version.
func parseMigrations(fsys fs.FS) ([]migrationFile, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}

	byVersion := map[uint]*migrationFile{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		var direction string
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			direction = "up"
		case strings.HasSuffix(name, ".down.sql"):
			direction = "down"
		default:
			continue
		}

		prefix, rest, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migration file %s has no version prefix", name)
		}
		v, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration file %s has invalid version: %w", name, err)
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("could not read migration file %s: %w", name, err)
		}

		mf, ok := byVersion[uint(v)]
		if !ok {
			mf = &migrationFile{Version: uint(v), Name: strings.TrimSuffix(rest, "."+direction+".sql")}
			byVersion[uint(v)] = mf
		}
		if direction == "up" {
			mf.Up = string(content)
		} else {
			mf.Down = string(content)
		}
	}

	files := make([]migrationFile, 0, len(byVersion))
	for _, mf := range byVersion {
		if mf.Up == "" {
			return nil, fmt.Errorf("migration %d has no up script", mf.Version)
		}
		files = append(files, *mf)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Version < files[j].Version })
	return files, nil
}

// splitStatements splits a script on semicolons outside string literals and
// drops "--" comment lines. Oracle rejects a trailing semicolon per statement.
func splitStatements(script string) []string {
	var lines []string
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}
	cleaned := strings.Join(lines, "\n")

	var (
		stmts   []string
		current strings.Builder
		inQuote bool
	)
	for _, r := range cleaned {
		switch {
		case r == '\'':
			inQuote = !inQuote
			current.WriteRune(r)
		case r == ';' && !inQuote:
			if s := strings.TrimSpace(current.String()); s != "" {
				stmts = append(stmts, s)
			}
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		stmts = append(stmts, s)
	}
	return stmts
}

const (
	schemaTableExistsQuery = `SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`
	createSchemaTableQuery = `CREATE TABLE schema_migrations (version NUMBER(19) NOT NULL, dirty NUMBER(1) NOT NULL)`
	selectVersionQuery     = `SELECT version "version", dirty "dirty" FROM schema_migrations`
	clearVersionQuery      = `DELETE FROM schema_migrations`
	insertVersionQuery     = `INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`
)

// statementMigrator runs embedded scripts statement by statement and records
// progress in a golang-migrate compatible schema_migrations table.
type statementMigrator struct {
	db         *sqlx.DB
	migrations []migrationFile
}

type versionRow struct {
	Version int64 `db:"version"`
	Dirty   int   `db:"dirty"`
}

func (s *statementMigrator) Up() error {
	ctx := context.Background()
	current, dirty, err := s.version(ctx)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database is dirty at version %d; fix it manually", current)
	}

	for _, mf := range s.migrations {
		if mf.Version <= current {
			continue
		}
		if err := s.setVersion(ctx, mf.Version, true); err != nil {
			return err
		}
		if err := s.exec(ctx, mf.Up); err != nil {
			return fmt.Errorf("could not execute migration %d_%s: %w", mf.Version, mf.Name, err)
		}
		if err := s.setVersion(ctx, mf.Version, false); err != nil {
			return err
		}
		logger.Get().Info("Executed migration", zap.Uint("version", mf.Version), zap.String("name", mf.Name))
	}
	return nil
}

func (s *statementMigrator) Down(steps int) error {
	ctx := context.Background()
	current, dirty, err := s.version(ctx)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database is dirty at version %d; fix it manually", current)
	}

	done := 0
	for i := len(s.migrations) - 1; i >= 0; i-- {
		if steps > 0 && done >= steps {
			break
		}
		mf := s.migrations[i]
		if mf.Version > current {
			continue
		}

		var previous uint
		if i > 0 {
			previous = s.migrations[i-1].Version
		}
		if err := s.setVersion(ctx, mf.Version, true); err != nil {
			return err
		}
		if err := s.exec(ctx, mf.Down); err != nil {
			return fmt.Errorf("could not roll back migration %d_%s: %w", mf.Version, mf.Name, err)
		}
		if err := s.setVersion(ctx, previous, false); err != nil {
			return err
		}
		logger.Get().Info("Rolled back migration", zap.Uint("version", mf.Version), zap.String("name", mf.Name))
		done++
	}
	return nil
}

func (s *statementMigrator) Version() (uint, bool, error) {
	return s.version(context.Background())
}

func (s *statementMigrator) version(ctx context.Context) (uint, bool, error) {
	if err := s.ensureTable(ctx); err != nil {
		return 0, false, err
	}
	var row versionRow
	err := s.db.GetContext(ctx, &row, selectVersionQuery)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query schema_migrations: %w", err)
	}
	return uint(row.Version), row.Dirty != 0, nil
}

func (s *statementMigrator) ensureTable(ctx context.Context) error {
	var count int
	if err := s.db.GetContext(ctx, &count, schemaTableExistsQuery); err != nil {
		return fmt.Errorf("failed to look up schema_migrations: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, createSchemaTableQuery); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

func (s *statementMigrator) setVersion(ctx context.Context, version uint, dirty bool) error {
	if _, err := s.db.ExecContext(ctx, clearVersionQuery); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	if version == 0 {
		return nil
	}
	d := 0
	if dirty {
		d = 1
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(insertVersionQuery), int64(version), d); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", version, err)
	}
	return nil
}

func (s *statementMigrator) exec(ctx context.Context, script string) error {
	for _, stmt := range splitStatements(script) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Package migrate применяет встроенные SQL миграции по порядку имен файлов.
package migrate

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/m04kA/SMC-EstateBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-EstateBookingService/pkg/psqlbuilder"
)

const versionsTable = "schema_migrations"

//go:embed *.sql
var files embed.FS

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator применяет миграции, каждую в своей транзакции
type Migrator struct {
	db        dbmetrics.DBExecutor
	txManager TransactionManager
	source    fs.FS
	logger    Logger
}

func New(db dbmetrics.DBExecutor, txManager TransactionManager, logger Logger) *Migrator {
	return &Migrator{
		db:        db,
		txManager: txManager,
		source:    files,
		logger:    logger,
	}
}

// Pending возвращает имена еще не примененных миграций
func (m *Migrator) Pending(ctx context.Context) ([]string, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}

	names, err := m.list()
	if err != nil {
		return nil, err
	}

	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]string, 0, len(names))
	for _, name := range names {
		if !applied[name] {
			pending = append(pending, name)
		}
	}
	return pending, nil
}

// Up применяет все ожидающие миграции и возвращает их количество
func (m *Migrator) Up(ctx context.Context) (int, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return 0, err
	}

	for _, name := range pending {
		body, err := fs.ReadFile(m.source, name)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", name, err)
		}

		err = m.txManager.Do(ctx, func(ctx context.Context) error {
			executor := dbmetrics.GetExecutor(ctx, m.db)
			if _, err := executor.ExecContext(ctx, string(body)); err != nil {
				return fmt.Errorf("apply %s: %w", name, err)
			}

			query, args, err := psqlbuilder.Insert(versionsTable).
				Columns("version").
				Values(name).
				ToSql()
			if err != nil {
				return fmt.Errorf("build insert for %s: %w", name, err)
			}
			if _, err := executor.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("record %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return 0, err
		}

		m.logger.Info("Migration applied: %s", name)
	}

	return len(pending), nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+versionsTable+` (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("create %s: %w", versionsTable, err)
	}
	return nil
}

func (m *Migrator) list() ([]string, error) {
	entries, err := fs.ReadDir(m.source, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]bool, error) {
	query, args, err := psqlbuilder.Select("version").
		From(versionsTable).
		OrderBy("version ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", versionsTable, err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		result[version] = true
	}
	return result, rows.Err()
}

package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/reviewlens/reviewlens/internal/models"
)

// SQLiteStore keeps a whole workbook in one SQLite file: a sheets catalog
// plus the column order and cell contents of every sheet.
type SQLiteStore struct {
	db *sql.DB
}

const workbookSchema = `
CREATE TABLE IF NOT EXISTS sheets (
	name TEXT PRIMARY KEY,
	protected INTEGER NOT NULL DEFAULT 0,
	cap_rows INTEGER NOT NULL DEFAULT 0,
	cap_cols INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS sheet_columns (
	sheet TEXT NOT NULL,
	pos INTEGER NOT NULL,
	name TEXT NOT NULL,
	PRIMARY KEY (sheet, pos)
);
CREATE TABLE IF NOT EXISTS cells (
	sheet TEXT NOT NULL,
	row INTEGER NOT NULL,
	col INTEGER NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (sheet, row, col)
);`

// OpenSQLite opens (or creates) a workbook file with WAL mode enabled.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec(workbookSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init workbook schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle so collaborators (the run log) can share
// the workbook file.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) Sheet(name string) (Sheet, error) {
	var exists int
	err := s.db.QueryRow(`SELECT 1 FROM sheets WHERE name = ?`, name).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", name, ErrSheetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup sheet %q: %w", name, err)
	}
	return &sqliteSheet{store: s, name: name}, nil
}

func (s *SQLiteStore) CreateSheet(name string, rows, cols int) (Sheet, error) {
	res, err := s.db.Exec(
		`INSERT INTO sheets (name, protected, cap_rows, cap_cols)
		 VALUES (?, 0, ?, ?)
		 ON CONFLICT (name) DO NOTHING`, name, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("sheet %q already exists", name)
	}
	return &sqliteSheet{store: s, name: name}, nil
}

// SetProtected flips the protection flag on an existing sheet.
func (s *SQLiteStore) SetProtected(name string, protected bool) error {
	flag := 0
	if protected {
		flag = 1
	}
	res, err := s.db.Exec(`UPDATE sheets SET protected = ? WHERE name = ?`, flag, name)
	if err != nil {
		return fmt.Errorf("protect sheet %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%q: %w", name, ErrSheetNotFound)
	}
	return nil
}

type sqliteSheet struct {
	store *SQLiteStore
	name  string
}

func (sh *sqliteSheet) Name() string { return sh.name }

func (sh *sqliteSheet) ReadAll() (models.Table, error) {
	db := sh.store.db

	colRows, err := db.Query(
		`SELECT name FROM sheet_columns WHERE sheet = ? ORDER BY pos`, sh.name)
	if err != nil {
		return models.Table{}, fmt.Errorf("read columns of %q: %w", sh.name, err)
	}
	defer colRows.Close()

	var columns []string
	for colRows.Next() {
		var col string
		if err := colRows.Scan(&col); err != nil {
			return models.Table{}, fmt.Errorf("scan column of %q: %w", sh.name, err)
		}
		columns = append(columns, col)
	}
	if err := colRows.Err(); err != nil {
		return models.Table{}, fmt.Errorf("read columns of %q: %w", sh.name, err)
	}

	t := models.Table{Columns: columns}

	cellRows, err := db.Query(
		`SELECT row, col, value FROM cells WHERE sheet = ? ORDER BY row, col`, sh.name)
	if err != nil {
		return models.Table{}, fmt.Errorf("read cells of %q: %w", sh.name, err)
	}
	defer cellRows.Close()

	for cellRows.Next() {
		var rowIdx, colIdx int
		var value string
		if err := cellRows.Scan(&rowIdx, &colIdx, &value); err != nil {
			return models.Table{}, fmt.Errorf("scan cell of %q: %w", sh.name, err)
		}
		for len(t.Rows) <= rowIdx {
			row := make(models.Row, len(columns))
			for _, col := range columns {
				row[col] = ""
			}
			t.Rows = append(t.Rows, row)
		}
		if colIdx < len(columns) {
			t.Rows[rowIdx][columns[colIdx]] = value
		}
	}
	if err := cellRows.Err(); err != nil {
		return models.Table{}, fmt.Errorf("read cells of %q: %w", sh.name, err)
	}

	return t, nil
}

func (sh *sqliteSheet) Clear() error {
	tx, err := sh.store.db.Begin()
	if err != nil {
		return fmt.Errorf("clear %q: %w", sh.name, err)
	}
	defer tx.Rollback()

	if err := clearSheetTx(tx, sh.name); err != nil {
		return fmt.Errorf("clear %q: %w", sh.name, err)
	}
	return tx.Commit()
}

func (sh *sqliteSheet) WriteAll(t models.Table) error {
	tx, err := sh.store.db.Begin()
	if err != nil {
		return fmt.Errorf("write %q: %w", sh.name, err)
	}
	defer tx.Rollback()

	if err := clearSheetTx(tx, sh.name); err != nil {
		return fmt.Errorf("write %q: %w", sh.name, err)
	}

	colStmt, err := tx.Prepare(`INSERT INTO sheet_columns (sheet, pos, name) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("write %q: %w", sh.name, err)
	}
	defer colStmt.Close()
	for pos, col := range t.Columns {
		if _, err := colStmt.Exec(sh.name, pos, col); err != nil {
			return fmt.Errorf("write column %q of %q: %w", col, sh.name, err)
		}
	}

	cellStmt, err := tx.Prepare(`INSERT INTO cells (sheet, row, col, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("write %q: %w", sh.name, err)
	}
	defer cellStmt.Close()
	for rowIdx, row := range t.Rows {
		for colIdx, col := range t.Columns {
			if _, err := cellStmt.Exec(sh.name, rowIdx, colIdx, row[col]); err != nil {
				return fmt.Errorf("write row %d of %q: %w", rowIdx, sh.name, err)
			}
		}
	}

	return tx.Commit()
}

func (sh *sqliteSheet) Protected() (bool, error) {
	var protected int
	err := sh.store.db.QueryRow(
		`SELECT protected FROM sheets WHERE name = ?`, sh.name).Scan(&protected)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%q: %w", sh.name, ErrSheetNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("read protection of %q: %w", sh.name, err)
	}
	return protected != 0, nil
}

func clearSheetTx(tx *sql.Tx, name string) error {
	if _, err := tx.Exec(`DELETE FROM cells WHERE sheet = ?`, name); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM sheet_columns WHERE sheet = ?`, name); err != nil {
		return err
	}
	return nil
}

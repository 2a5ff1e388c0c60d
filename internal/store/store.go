// Package store abstracts the sheet-like tabular storage the pipeline reads
// from and writes to. The pipeline only ever does whole-sheet reads and
// whole-sheet overwrites, so the surface stays deliberately small.
package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/reviewlens/reviewlens/internal/models"
)

var ErrSheetNotFound = errors.New("sheet not found")

type Store interface {
	// Sheet returns the named sheet, or an error wrapping ErrSheetNotFound.
	Sheet(name string) (Sheet, error)
	// CreateSheet creates a new sheet sized with the given capacity hints.
	// Creating a sheet that already exists is an error.
	CreateSheet(name string, rows, cols int) (Sheet, error)
}

type Sheet interface {
	Name() string
	// ReadAll returns the full sheet contents: header row as column order,
	// remaining rows as data.
	ReadAll() (models.Table, error)
	Clear() error
	// WriteAll writes the header row followed by all data rows, anchored at
	// the sheet origin. Callers Clear first for full-overwrite semantics.
	WriteAll(t models.Table) error
	Protected() (bool, error)
}

// EnsureSheet returns the named sheet, creating it with the given capacity
// hints when absent.
func EnsureSheet(s Store, name string, rows, cols int) (Sheet, error) {
	sheet, err := s.Sheet(name)
	if err == nil {
		return sheet, nil
	}
	if !errors.Is(err, ErrSheetNotFound) {
		return nil, err
	}
	sheet, err = s.CreateSheet(name, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", name, err)
	}
	slog.Info("[Store] Created sheet", slog.String("sheet", name),
		slog.Int("rows", rows), slog.Int("cols", cols))
	return sheet, nil
}

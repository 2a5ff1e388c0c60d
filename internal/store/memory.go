package store

import (
	"fmt"
	"sync"

	"github.com/reviewlens/reviewlens/internal/models"
)

// MemoryStore is a map-backed Store used by tests and offline runs.
type MemoryStore struct {
	mu     sync.Mutex
	sheets map[string]*memorySheet
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: make(map[string]*memorySheet)}
}

func (s *MemoryStore) Sheet(name string) (Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sheet, ok := s.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrSheetNotFound)
	}
	return sheet, nil
}

func (s *MemoryStore) CreateSheet(name string, rows, cols int) (Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sheets[name]; ok {
		return nil, fmt.Errorf("sheet %q already exists", name)
	}
	sheet := &memorySheet{name: name}
	s.sheets[name] = sheet
	return sheet, nil
}

// Seed replaces the named sheet's contents, creating it when absent.
func (s *MemoryStore) Seed(name string, t models.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sheet, ok := s.sheets[name]
	if !ok {
		sheet = &memorySheet{name: name}
		s.sheets[name] = sheet
	}
	sheet.table = t.Clone()
}

// SetProtected toggles the protection flag on an existing sheet.
func (s *MemoryStore) SetProtected(name string, protected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sheet, ok := s.sheets[name]; ok {
		sheet.protected = protected
	}
}

type memorySheet struct {
	mu        sync.Mutex
	name      string
	table     models.Table
	protected bool
}

func (m *memorySheet) Name() string { return m.name }

func (m *memorySheet) ReadAll() (models.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.Clone(), nil
}

func (m *memorySheet) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table = models.Table{}
	return nil
}

func (m *memorySheet) WriteAll(t models.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table = t.Clone()
	return nil
}

func (m *memorySheet) Protected() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.protected, nil
}

package store

import (
	"slices"
	"sync"

	"github.com/ayoisaiah/studyfocus/internal/models"
)

// Memory is a DB that lives only as long as the process.
type Memory struct {
	ids      map[string]struct{}
	sessions []models.SessionRecord
	streak   models.StreakState
	mu       sync.Mutex
}

func NewMemory() *Memory {
	return &Memory{ids: make(map[string]struct{})}
}

func (m *Memory) AppendSession(rec *models.SessionRecord) error {
	if rec.ID == "" {
		return errMissingID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ids[rec.ID]; ok {
		return errDuplicateID.Fmt(rec.ID)
	}

	m.ids[rec.ID] = struct{}{}
	m.sessions = append(m.sessions, *rec)

	return nil
}

func (m *Memory) Sessions() ([]models.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.sessions), nil
}

func (m *Memory) Streak() (models.StreakState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.streak, nil
}

func (m *Memory) UpdateStreak(s models.StreakState) error {
	m.mu.Lock()
	m.streak = s
	m.mu.Unlock()

	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ids = make(map[string]struct{})
	m.sessions = nil
	m.streak = models.StreakState{}

	return nil
}

func (m *Memory) Close() error {
	return nil
}

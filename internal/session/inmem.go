package session

import (
	"context"
	"fmt"
	"sync"

	"mindful-escapades/internal/models"
)

var _ Store = (*InMemoryStore)(nil)

// InMemoryStore - хранилище в памяти процесса. Подходит для CLI и одного инстанса
// сервера; при перезапуске сессии теряются.
type InMemoryStore struct {
	mu   sync.RWMutex
	data map[string]*State
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{data: make(map[string]*State)}
}

// Get возвращает копию состояния, чтобы изменения не попадали в хранилище без Save.
func (s *InMemoryStore) Get(_ context.Context, id string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.data[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}
	return state.Clone(), nil
}

func (s *InMemoryStore) Save(_ context.Context, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[state.ID] = state.Clone()
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, id)
	return nil
}

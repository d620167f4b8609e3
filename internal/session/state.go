package session

import (
	"time"

	"github.com/google/uuid"

	"mindful-escapades/internal/models"
)

// State - состояние одной игровой сессии. Владелец один: ход, который держит
// блокировку сессии. Глобальных синглтонов нет, каждая сессия изолирована.
type State struct {
	ID        string            `json:"id"`
	History   []models.Exchange `json:"history"`
	Score     int               `json:"score"`
	Status    models.Status     `json:"status"`
	TurnCount int               `json:"turn_count"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// New создает свежую сессию: пустая история, счет 0, статус ongoing.
func New() *State {
	now := time.Now().UTC()
	return &State{
		ID:        uuid.NewString(),
		History:   []models.Exchange{},
		Status:    models.StatusOngoing,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Terminal - сессия достигла одной из концовок и больше не принимает ходы.
func (s *State) Terminal() bool {
	return s.Status.Terminal()
}

// AppendExchange добавляет завершенный обмен в историю. История только растет:
// существующие элементы не меняются, а новый срез не делит массив с клонами.
func (s *State) AppendExchange(utterance, reply string, at time.Time) {
	n := len(s.History)
	s.History = append(s.History[:n:n], models.Exchange{
		Utterance: utterance,
		Reply:     reply,
		At:        at.Unix(),
	})
	s.TurnCount++
	s.UpdatedAt = at.UTC()
}

// SetStatus применяет статус из разобранного ответа. Из концовки выйти нельзя,
// это делает только Reset.
func (s *State) SetStatus(status models.Status) {
	if s.Terminal() {
		return
	}
	s.Status = status
}

// Reset отбрасывает историю и счет, сохраняя ID сессии.
func (s *State) Reset() {
	s.History = []models.Exchange{}
	s.Score = 0
	s.Status = models.StatusOngoing
	s.TurnCount = 0
	s.UpdatedAt = time.Now().UTC()
}

// Clone возвращает независимую копию состояния.
func (s *State) Clone() *State {
	c := *s
	c.History = make([]models.Exchange, len(s.History))
	copy(c.History, s.History)
	return &c
}

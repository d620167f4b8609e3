package handler

import (
	"time"

	"mindful-escapades/internal/models"
	"mindful-escapades/internal/session"
)

// TurnRequestDTO - тело POST /sessions/:id/turns.
type TurnRequestDTO struct {
	Utterance  string `json:"utterance" binding:"required,max=2000"`
	ImageStyle string `json:"image_style" binding:"max=32"`
	VoiceStyle string `json:"voice_style" binding:"max=32"`
}

// SessionDTO - состояние сессии для клиента.
type SessionDTO struct {
	ID        string            `json:"id"`
	Score     int               `json:"score"`
	Status    models.Status     `json:"status"`
	Terminal  bool              `json:"terminal"`
	TurnCount int               `json:"turn_count"`
	History   []models.Exchange `json:"history"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// StylesDTO - пресеты для выпадающих списков клиента.
type StylesDTO struct {
	ImageStyles       []string `json:"image_styles"`
	VoiceStyles       []string `json:"voice_styles"`
	DefaultImageStyle string   `json:"default_image_style"`
	DefaultVoiceStyle string   `json:"default_voice_style"`
}

// APIError - стандартный ответ об ошибке.
type APIError struct {
	Message string `json:"message"`
}

func toSessionDTO(s *session.State) SessionDTO {
	return SessionDTO{
		ID:        s.ID,
		Score:     s.Score,
		Status:    s.Status,
		Terminal:  s.Terminal(),
		TurnCount: s.TurnCount,
		History:   s.History,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

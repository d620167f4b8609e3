package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"mindful-escapades/internal/models"
	"mindful-escapades/internal/schemas"
	"mindful-escapades/internal/session"
)

// ErrEmptyUtterance - игрок ничего не написал.
var ErrEmptyUtterance = errors.New("utterance is empty")

// TurnService ведет жизненный цикл сессий и выполняет ходы:
// модель -> разбор -> счет и статус -> сохранение -> медиа.
type TurnService struct {
	store    session.Store
	narrator NarrativeClient
	media    MediaEnricher
	logger   *zap.Logger
	locks    *sessionLocks
}

// NewTurnService создает сервис ходов.
func NewTurnService(store session.Store, narrator NarrativeClient, media MediaEnricher, logger *zap.Logger) *TurnService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TurnService{
		store:    store,
		narrator: narrator,
		media:    media,
		logger:   logger.Named("TurnService"),
		locks:    newSessionLocks(),
	}
}

// StartSession создает и сохраняет новую сессию.
func (s *TurnService) StartSession(ctx context.Context) (*session.State, error) {
	st := session.New()
	if err := s.store.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("save new session: %w", err)
	}
	s.logger.Info("Сессия создана", zap.String("session_id", st.ID))
	return st, nil
}

// GetSession возвращает текущее состояние сессии.
func (s *TurnService) GetSession(ctx context.Context, id string) (*session.State, error) {
	return s.store.Get(ctx, id)
}

// ResetSession начинает историю заново, сохраняя ID сессии.
func (s *TurnService) ResetSession(ctx context.Context, id string) (*session.State, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	st, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	st.Reset()
	if err := s.store.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("save reset session: %w", err)
	}
	s.logger.Info("Сессия сброшена", zap.String("session_id", id))
	return st, nil
}

// EndSession удаляет сессию.
func (s *TurnService) EndSession(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Сессия завершена", zap.String("session_id", id))
	return nil
}

// PlayTurn выполняет один ход. Ходы одной сессии строго последовательны.
// Если модель недоступна, сохраненное состояние не меняется и ход можно
// повторить. Медиа получаются после сохранения и на ход не влияют.
func (s *TurnService) PlayTurn(ctx context.Context, sessionID string, req models.TurnRequest) (*models.RenderedTurn, error) {
	if strings.TrimSpace(req.Utterance) == "" {
		return nil, ErrEmptyUtterance
	}
	if err := s.media.ValidateStyles(req.ImageStyle, req.VoiceStyle); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	stored, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	log := s.logger.With(zap.String("session_id", sessionID), zap.Int("turn", stored.TurnCount+1))

	// Работаем с копией: при ошибке модели в хранилище остается прежнее состояние
	st := stored.Clone()
	raw, err := s.narrator.Advance(ctx, st, req.Utterance)
	if err != nil {
		log.Warn("Ход не выполнен", zap.Error(err))
		return nil, err
	}

	turn := schemas.ParseTurn(raw, log)
	scoreBefore := st.Score
	session.ApplySentiment(st, turn.Sentiment)
	st.SetStatus(turn.Status)

	if err := s.store.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	turnsTotal.WithLabelValues(string(st.Status), string(turn.Sentiment)).Inc()
	log.Info("Ход выполнен",
		zap.String("status", string(st.Status)),
		zap.String("sentiment", string(turn.Sentiment)),
		zap.Int("score", st.Score),
		zap.Bool("malformed", turn.Malformed),
	)

	rendered := &models.RenderedTurn{
		SessionID:  st.ID,
		Turn:       turn,
		Title:      RenderTitle(turn),
		Dialog:     RenderDialog(turn),
		Score:      st.Score,
		ScoreDelta: st.Score - scoreBefore,
		Terminal:   st.Terminal(),
	}

	bundle, err := s.media.Enrich(ctx, MediaRequest{
		ImagePrompt: turn.ImagePrompt,
		ImageStyle:  req.ImageStyle,
		VoiceText:   turn.DialogPrompt,
		VoiceStyle:  req.VoiceStyle,
	})
	if err != nil {
		// Стили уже проверены, сюда попасть нельзя; ход все равно засчитан
		log.Error("Ошибка обогащения медиа", zap.Error(err))
	}
	rendered.Image = bundle.Image
	rendered.Voice = bundle.Voice
	return rendered, nil
}

// sessionLocks - мьютекс на каждую сессию. Блокировка локальна для процесса.
// Запись живет, пока ее кто-то держит или ждет, поэтому карта не растет
// от несуществующих и истекших сессий.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (l *sessionLocks) lock(id string) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &sessionLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

// size - число записей, для тестов.
func (l *sessionLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

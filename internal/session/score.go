package session

import "mindful-escapades/internal/models"

// ApplySentiment обновляет счет по оценке хода: negative -1, positive +1,
// neutral без изменений. Ограничений сверху и снизу нет. Возвращает новый счет.
func ApplySentiment(s *State, sentiment models.Sentiment) int {
	switch sentiment {
	case models.SentimentNegative:
		s.Score--
	case models.SentimentPositive:
		s.Score++
	}
	return s.Score
}

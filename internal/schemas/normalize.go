package schemas

import (
	"regexp"
	"strings"

	"mindful-escapades/internal/models"
)

// separatorRun схлопывает пробелы, дефисы и подчеркивания в одно подчеркивание,
// так что "Good Ending", "good-ending" и "good_ending" дают один ключ.
var separatorRun = regexp.MustCompile(`[\s\-_]+`)

// statusAliases - закрытая таблица нормализации статуса. Разные точки входа
// исходного промпта использовали и "good_ending", и "good ending".
var statusAliases = map[string]models.Status{
	"ongoing":     models.StatusOngoing,
	"on_going":    models.StatusOngoing,
	"in_progress": models.StatusOngoing,
	"good_ending": models.StatusGoodEnding,
	"goodending":  models.StatusGoodEnding,
	"bad_ending":  models.StatusBadEnding,
	"badending":   models.StatusBadEnding,
}

var sentimentAliases = map[string]models.Sentiment{
	"neutral":  models.SentimentNeutral,
	"negative": models.SentimentNegative,
	"positive": models.SentimentPositive,
}

func normalizeKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = separatorRun.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}

// NormalizeStatus приводит строку к одному из известных статусов.
// Второе значение false означает, что была подставлена безопасная замена (ongoing).
func NormalizeStatus(raw string) (models.Status, bool) {
	if status, ok := statusAliases[normalizeKey(raw)]; ok {
		return status, true
	}
	return models.StatusOngoing, false
}

// NormalizeSentiment приводит строку к одной из известных оценок.
// Неизвестное значение превращается в neutral.
func NormalizeSentiment(raw string) (models.Sentiment, bool) {
	if sentiment, ok := sentimentAliases[normalizeKey(raw)]; ok {
		return sentiment, true
	}
	return models.SentimentNeutral, false
}

package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"mindful-escapades/internal/models"
)

// FallbackDialog показывается игроку, если ответ модели не удалось декодировать.
const FallbackDialog = "The storyteller lost the thread of the story for a moment. Please describe your action again."

var (
	malformedRepliesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adventure_malformed_replies_total",
		Help: "Total number of narrative replies that could not be decoded at all.",
	})
	replyAnomaliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adventure_reply_anomalies_total",
		Help: "Total number of field-level anomalies found in decoded narrative replies.",
	}, []string{"field"})
)

// replyFields - поля ответа после извлечения строк. Теги validate описывают,
// без каких полей ход выглядит подозрительно (это аномалия, а не ошибка).
type replyFields struct {
	StoryTitle                 string `json:"story_title"`
	StoryTitleShortDescription string `json:"story_title_short_description"`
	DialogPrompt               string `json:"dialog_prompt" validate:"required"`
	ImagePrompt                string `json:"image_prompt"`
	Status                     string `json:"status" validate:"required"`
	Sentiment                  string `json:"sentiment" validate:"required"`
	GoodChoice                 string `json:"good_choice"`
	BadChoice                  string `json:"bad_choice"`
	WhackyChoice               string `json:"whacky_choice"`
}

// replyKeys - ключи, которые модель должна вернуть.
var replyKeys = []string{
	"story_title", "story_title_short_description", "image_prompt", "dialog_prompt",
	"status", "sentiment", "good_choice", "bad_choice", "whacky_choice",
}

var fieldValidator = newFieldValidator()

func newFieldValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseTurn превращает сырой ответ модели в TurnResponse. Никогда не паникует и
// не возвращает ошибку: при любом мусоре на входе получается ход с безопасными
// значениями (ongoing/neutral), а аномалии логируются и попадают в Anomalies.
func ParseTurn(raw string, log *zap.Logger) models.TurnResponse {
	if log == nil {
		log = zap.NewNop()
	}

	fields, err := decodeReply(raw)
	if err != nil {
		malformedRepliesTotal.Inc()
		log.Warn("Narrative reply could not be decoded, using fallback turn",
			zap.Error(err),
			zap.Int("raw_length", len(raw)),
			zap.String("raw_sample", stringShort(raw, 200)),
		)
		return fallbackTurn(err)
	}

	var anomalies []string
	read := func(key string) string {
		value, ok := fields[key]
		if !ok {
			return ""
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			anomalies = append(anomalies, fmt.Sprintf("field %s is not a string", key))
			replyAnomaliesTotal.WithLabelValues(key).Inc()
			return ""
		}
		return strings.TrimSpace(s)
	}

	rf := replyFields{
		StoryTitle:                 read("story_title"),
		StoryTitleShortDescription: read("story_title_short_description"),
		DialogPrompt:               read("dialog_prompt"),
		ImagePrompt:                read("image_prompt"),
		Status:                     read("status"),
		Sentiment:                  read("sentiment"),
		GoodChoice:                 read("good_choice"),
		BadChoice:                  read("bad_choice"),
		WhackyChoice:               read("whacky_choice"),
	}

	var validationErrs validator.ValidationErrors
	if err := fieldValidator.Struct(rf); errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			anomalies = append(anomalies, fmt.Sprintf("field %s is missing or empty", fe.Field()))
			replyAnomaliesTotal.WithLabelValues(fe.Field()).Inc()
		}
	}

	status, known := NormalizeStatus(rf.Status)
	if !known && rf.Status != "" {
		anomalies = append(anomalies, fmt.Sprintf("unknown status %q", rf.Status))
		replyAnomaliesTotal.WithLabelValues("status").Inc()
	}
	sentiment, known := NormalizeSentiment(rf.Sentiment)
	if !known && rf.Sentiment != "" {
		anomalies = append(anomalies, fmt.Sprintf("unknown sentiment %q", rf.Sentiment))
		replyAnomaliesTotal.WithLabelValues("sentiment").Inc()
	}

	if len(anomalies) > 0 {
		log.Warn("Narrative reply has anomalies, defaults applied", zap.Strings("anomalies", anomalies))
	}

	return models.TurnResponse{
		StoryTitle:                 rf.StoryTitle,
		StoryTitleShortDescription: rf.StoryTitleShortDescription,
		DialogPrompt:               rf.DialogPrompt,
		ImagePrompt:                rf.ImagePrompt,
		Status:                     status,
		Sentiment:                  sentiment,
		GoodChoice:                 rf.GoodChoice,
		BadChoice:                  rf.BadChoice,
		WhackyChoice:               rf.WhackyChoice,
		Anomalies:                  anomalies,
	}
}

// decodeReply извлекает JSON-объект из ответа и раскладывает его по ключам.
func decodeReply(raw string) (map[string]json.RawMessage, error) {
	content := ExtractJSONContent(raw)
	if content == "" {
		return nil, fmt.Errorf("%w: no JSON object found", models.ErrMalformedReply)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedReply, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: reply is null", models.ErrMalformedReply)
	}
	// "{" и "}{" после балансировки дают пустой объект; это не ход
	for _, key := range replyKeys {
		if _, ok := fields[key]; ok {
			return fields, nil
		}
	}
	return nil, fmt.Errorf("%w: reply has none of the turn fields", models.ErrMalformedReply)
}

func fallbackTurn(cause error) models.TurnResponse {
	return models.TurnResponse{
		DialogPrompt: FallbackDialog,
		Status:       models.StatusOngoing,
		Sentiment:    models.SentimentNeutral,
		Malformed:    true,
		Anomalies:    []string{cause.Error()},
	}
}

// stringShort обрезает строку для логов.
func stringShort(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}

package models

// Status - состояние сюжета после хода.
type Status string

const (
	StatusOngoing    Status = "ongoing"
	StatusGoodEnding Status = "good_ending"
	StatusBadEnding  Status = "bad_ending"
)

// Terminal сообщает, является ли статус концовкой.
func (s Status) Terminal() bool {
	return s == StatusGoodEnding || s == StatusBadEnding
}

// Sentiment - оценка моделью того, насколько удачно игрок решил текущую ситуацию.
type Sentiment string

const (
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentPositive Sentiment = "positive"
)

// TurnRequest - реплика игрока на один ход и выбранные пресеты медиа.
// Пустой пресет означает пресет по умолчанию из конфигурации.
type TurnRequest struct {
	Utterance  string
	ImageStyle string
	VoiceStyle string
}

// TurnResponse - нормализованный ответ модели. Все поля всегда заполнены
// допустимыми значениями, даже если модель вернула мусор.
type TurnResponse struct {
	StoryTitle                 string    `json:"story_title"`
	StoryTitleShortDescription string    `json:"story_title_short_description"`
	DialogPrompt               string    `json:"dialog_prompt"`
	ImagePrompt                string    `json:"image_prompt"`
	Status                     Status    `json:"status"`
	Sentiment                  Sentiment `json:"sentiment"`
	GoodChoice                 string    `json:"good_choice"`
	BadChoice                  string    `json:"bad_choice"`
	WhackyChoice               string    `json:"whacky_choice"`

	// Malformed выставляется, если ответ вообще не удалось декодировать.
	Malformed bool `json:"malformed,omitempty"`
	// Anomalies - замечания валидатора; на логику хода не влияют.
	Anomalies []string `json:"anomalies,omitempty"`
}

// HasAllChoices - подсказки показываются игроку только если модель дала все три.
func (t TurnResponse) HasAllChoices() bool {
	return t.GoodChoice != "" && t.BadChoice != "" && t.WhackyChoice != ""
}

// Exchange - одна завершенная пара "реплика игрока - сырой ответ модели".
type Exchange struct {
	Utterance string `json:"utterance"`
	Reply     string `json:"reply"`
	At        int64  `json:"at"` // unix seconds
}

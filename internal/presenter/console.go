package presenter

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"mindful-escapades/internal/models"
)

// Сообщения консольной версии игры.
const (
	WelcomeBanner = "Welcome to Gemini Adventures 0.9 (formerly known as StoryMaker)"
	InputPrompt   = "Type anything (or 'stop' to quit): "
	GoodEnding    = "You get the good ending! Congrats!"
	BadEnding     = "Oh no! You got the bad ending."
	Farewell      = "Thank you for playing!"
)

// Console печатает ходы в терминал.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// consoleTurn - ответ модели в том виде, в котором его видит игрок.
type consoleTurn struct {
	StoryTitle                 string  `json:"story_title"`
	StoryTitleShortDescription string  `json:"story_title_short_description"`
	Base64GeneratedImage       *string `json:"base64_generated_image"`
	ImagePrompt                string  `json:"image_prompt"`
	DialogPrompt               string  `json:"dialog_prompt"`
	Status                     string  `json:"status"`
	Sentiment                  string  `json:"sentiment"`
	GoodChoice                 string  `json:"good_choice"`
	BadChoice                  string  `json:"bad_choice"`
	WhackyChoice               string  `json:"whacky_choice"`
}

func (c *Console) Welcome(score int) {
	fmt.Fprintln(c.out, WelcomeBanner)
	fmt.Fprintf(c.out, "Initial score: %d\n", score)
}

func (c *Console) Prompt() {
	fmt.Fprint(c.out, InputPrompt)
}

// Turn печатает ход: JSON ответа, изменение счета и концовку, если она наступила.
func (c *Console) Turn(r *models.RenderedTurn) error {
	view := consoleTurn{
		StoryTitle:                 r.Turn.StoryTitle,
		StoryTitleShortDescription: r.Turn.StoryTitleShortDescription,
		ImagePrompt:                r.Turn.ImagePrompt,
		DialogPrompt:               r.Turn.DialogPrompt,
		Status:                     string(r.Turn.Status),
		Sentiment:                  string(r.Turn.Sentiment),
		GoodChoice:                 r.Turn.GoodChoice,
		BadChoice:                  r.Turn.BadChoice,
		WhackyChoice:               r.Turn.WhackyChoice,
	}
	if r.Image.Available() {
		encoded := base64.StdEncoding.EncodeToString(r.Image.Data)
		view.Base64GeneratedImage = &encoded
	}

	data, err := json.MarshalIndent(view, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}
	fmt.Fprintln(c.out, string(data))

	switch {
	case r.ScoreDelta < 0:
		fmt.Fprintf(c.out, "Score decreased: %d\n", r.Score)
	case r.ScoreDelta > 0:
		fmt.Fprintf(c.out, "Score increased: %d\n", r.Score)
	}

	switch r.Turn.Status {
	case models.StatusGoodEnding:
		fmt.Fprintln(c.out, GoodEnding)
	case models.StatusBadEnding:
		fmt.Fprintln(c.out, BadEnding)
	}
	return nil
}

// Error сообщает игроку об ошибке хода, не завершая игру.
func (c *Console) Error(err error) {
	switch {
	case errors.Is(err, models.ErrTransport):
		fmt.Fprintln(c.out, "The narrator did not answer. Try the same move again.")
	case errors.Is(err, models.ErrUnknownStyle):
		fmt.Fprintf(c.out, "Unknown style: %v\n", err)
	default:
		fmt.Fprintf(c.out, "Something went wrong: %v\n", err)
	}
}

func (c *Console) Reset() {
	fmt.Fprintln(c.out, "The story starts over. Score: 0")
}

func (c *Console) Goodbye(score int) {
	fmt.Fprintln(c.out, Farewell)
	fmt.Fprintf(c.out, "Final score: %d\n", score)
}

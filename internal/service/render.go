package service

import (
	"fmt"
	"regexp"
	"strings"

	"mindful-escapades/internal/models"
)

var titleWord = regexp.MustCompile(`[A-Za-z]+('[A-Za-z]+)?`)

// TitleCaps делает заглавной первую букву каждого слова, остальные строчными.
// Апостроф внутри слова его не разрывает: "don't" -> "Don't".
func TitleCaps(s string) string {
	return titleWord.ReplaceAllStringFunc(s, func(w string) string {
		return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	})
}

// RenderTitle - заголовок хода в виде "Название - Описание".
func RenderTitle(turn models.TurnResponse) string {
	title := TitleCaps(strings.TrimSpace(turn.StoryTitle))
	desc := TitleCaps(strings.TrimSpace(turn.StoryTitleShortDescription))
	switch {
	case title != "" && desc != "":
		return title + " - " + desc
	case title != "":
		return title
	default:
		return desc
	}
}

// RenderDialog - markdown для панели диалога. Подсказки добавляются только
// когда модель дала все три варианта.
func RenderDialog(turn models.TurnResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Current State:\n%s\n", turn.DialogPrompt)
	if turn.HasAllChoices() {
		fmt.Fprintf(&b, "\n### Suggested Choices:\n1. %s\n2. %s\n3. %s\n",
			turn.GoodChoice, turn.BadChoice, turn.WhackyChoice)
	}
	return b.String()
}

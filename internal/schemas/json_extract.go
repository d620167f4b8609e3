package schemas

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencedJSONBlock = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	fencedAnyBlock  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// ExtractJSONContent пытается вытащить JSON-объект из ответа модели.
// Модель иногда оборачивает JSON в ```json ... ``` или добавляет текст до и после.
// Возвращает пустую строку, если ничего похожего на объект не найдено.
func ExtractJSONContent(rawText string) string {
	rawText = strings.TrimSpace(rawText)
	if rawText == "" {
		return ""
	}

	// 1. Ответ уже является валидным JSON (обычный случай при response_format=json)
	if isValidJSON(rawText) {
		return rawText
	}

	// 2. Блоки ```json ... ``` и просто ``` ... ```
	for _, re := range []*regexp.Regexp{fencedJSONBlock, fencedAnyBlock} {
		if m := re.FindStringSubmatch(rawText); len(m) > 1 {
			if result := repairJSON(m[1]); result != "" {
				return result
			}
		}
	}

	// 3. Между первой { и последней }
	first := strings.Index(rawText, "{")
	if first == -1 {
		return ""
	}
	candidate := rawText[first:]
	if last := strings.LastIndex(rawText, "}"); last > first {
		candidate = rawText[first : last+1]
	}
	if result := repairJSON(candidate); result != "" {
		return result
	}

	// 4. Ответ обрезан посередине: пробуем дописать закрывающие скобки ко всему хвосту
	return repairJSON(rawText[first:])
}

func isValidJSON(s string) bool {
	var js json.RawMessage
	return json.Unmarshal([]byte(s), &js) == nil
}

// repairJSON обрезает пробелы и, если нужно, балансирует скобки.
func repairJSON(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}
	if isValidJSON(trimmed) {
		return trimmed
	}
	if balanced := balanceBrackets(trimmed); isValidJSON(balanced) {
		return balanced
	}
	return ""
}

// balanceBrackets дописывает недостающие закрывающие скобки в конец текста,
// игнорируя скобки внутри строковых литералов. Незакрытая строка тоже закрывается.
func balanceBrackets(text string) string {
	var stack []rune
	inString := false
	escape := false

	for _, r := range text {
		if escape {
			escape = false
			continue
		}
		if inString {
			switch r {
			case '\\':
				escape = true
			case '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == r {
				stack = stack[:len(stack)-1]
			}
		}
	}

	var b strings.Builder
	b.WriteString(text)
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteRune(stack[i])
	}
	return b.String()
}

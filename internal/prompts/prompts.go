package prompts

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed adventure.md
var adventurePrompt string

// Adventure возвращает системный промпт рассказчика. Если задан overridePath,
// промпт читается из файла (удобно подбирать формулировки без пересборки).
func Adventure(overridePath string) (string, error) {
	if overridePath == "" {
		return adventurePrompt, nil
	}
	data, err := os.ReadFile(overridePath)
	if err != nil {
		return "", fmt.Errorf("read system prompt %s: %w", overridePath, err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("system prompt file %s is empty", overridePath)
	}
	return prompt, nil
}

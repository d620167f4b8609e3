package service

import (
	"fmt"
	"strings"

	"mindful-escapades/internal/models"
)

// Пресеты стилей: имя для игрока -> значение для провайдера.
// Порядок срезов - порядок в выпадающих списках клиента.
var (
	imagePresets = []stylePreset{
		{Name: "Basic", ProviderID: "picture"},
		{Name: "Anime", ProviderID: "anime"},
		{Name: "Pixar", ProviderID: "pixar-style"},
		{Name: "Cinematic", ProviderID: "cinematic lighting"},
		{Name: "Raw", ProviderID: "raw"},
	}
	voicePresets = []stylePreset{
		{Name: "Andrew", ProviderID: "en-US-AndrewMultilingualNeural"},
		{Name: "Ava", ProviderID: "en-US-AvaMultilingualNeural"},
		{Name: "Brian", ProviderID: "en-US-BrianMultilingualNeural"},
		{Name: "Emma", ProviderID: "en-US-EmmaMultilingualNeural"},
		{Name: "Neerja", ProviderID: "en-IN-NeerjaExpressiveNeural"},
	}
)

type stylePreset struct {
	Name       string
	ProviderID string
}

// ImageStyles возвращает имена пресетов изображений.
func ImageStyles() []string { return presetNames(imagePresets) }

// VoiceStyles возвращает имена пресетов голоса.
func VoiceStyles() []string { return presetNames(voicePresets) }

func presetNames(presets []stylePreset) []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// resolvePreset ищет пресет без учета регистра; пустое имя - пресет fallback.
func resolvePreset(kind models.MediaKind, presets []stylePreset, name, fallback string) (stylePreset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallback
	}
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return stylePreset{}, fmt.Errorf("%w: %s style %q", models.ErrUnknownStyle, kind, name)
}

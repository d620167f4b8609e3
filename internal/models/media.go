package models

// MediaKind - тип медиа, сопровождающего ход.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVoice MediaKind = "voice"
)

// MediaAsset - сгенерированное изображение или озвучка. Data == nil означает,
// что медиа получить не удалось (или запрашивать было нечего); ход при этом
// продолжается без него. При сериализации в JSON Data кодируется в base64.
type MediaAsset struct {
	Kind        MediaKind `json:"kind"`
	Source      string    `json:"source"`
	Style       string    `json:"style"`
	ProviderID  string    `json:"provider_id"`
	ContentType string    `json:"content_type,omitempty"`
	Data        []byte    `json:"data,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Available сообщает, есть ли у ассета содержимое.
func (m *MediaAsset) Available() bool {
	return m != nil && len(m.Data) > 0
}

// MediaBundle - результат обогащения хода медиа.
type MediaBundle struct {
	Image *MediaAsset
	Voice *MediaAsset
}

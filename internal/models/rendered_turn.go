package models

// RenderedTurn - всё, что нужно презентеру (консоль или веб-клиент) для показа хода.
type RenderedTurn struct {
	SessionID  string       `json:"session_id"`
	Turn       TurnResponse `json:"turn"`
	Title      string       `json:"title"`
	Dialog     string       `json:"dialog"`
	Score      int          `json:"score"`
	ScoreDelta int          `json:"score_delta"`
	Terminal   bool         `json:"terminal"`
	Image      *MediaAsset  `json:"image,omitempty"`
	Voice      *MediaAsset  `json:"voice,omitempty"`
}

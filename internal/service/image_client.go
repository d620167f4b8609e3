package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"mindful-escapades/internal/config"
)

// maxImageBytes ограничивает размер ответа сервиса изображений.
const maxImageBytes = 10 << 20

// ImageProvider генерирует картинку по текстовому описанию сцены.
type ImageProvider interface {
	GenerateImage(ctx context.Context, prompt, loraStyle string) (data []byte, contentType string, err error)
}

// imageClient - HTTP клиент сервиса генерации изображений (multipart форма).
type imageClient struct {
	baseURL    string
	apiKey     string
	hdMode     bool
	seed       string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewImageClient создает клиента сервиса изображений.
func NewImageClient(cfg config.ImageConfig, logger *zap.Logger) ImageProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &imageClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		hdMode:     cfg.HDMode,
		seed:       cfg.Seed,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("ImageClient"),
	}
}

func (c *imageClient) GenerateImage(ctx context.Context, prompt, loraStyle string) ([]byte, string, error) {
	endpointURL, fields := c.requestFields(prompt, loraStyle)
	log := c.logger.With(zap.String("api_url", endpointURL), zap.String("lora_style", loraStyle))

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for _, f := range fields {
		if err := form.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", f[0], err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, &body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("bearer", c.apiKey)

	log.Debug("Sending request to image API")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if resp.StatusCode != http.StatusOK {
		log.Warn("Image API returned non-OK status",
			zap.Int("status_code", resp.StatusCode),
			zap.Int("body_len", len(data)),
		)
		return nil, "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, truncate(string(data), 200))
	}
	if readErr != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", readErr)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("API returned empty data")
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("API returned more than %d bytes", maxImageBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("API returned %s instead of an image", contentType)
	}
	return data, contentType, nil
}

// requestFields - endpoint и поля формы. Обычный режим идет в /turbo с
// фиксированным seed, HD режим - в корень API с квадратным кадром.
// HD модель lora_style не принимает, стиль в этом режиме не применяется.
func (c *imageClient) requestFields(prompt, loraStyle string) (string, [][2]string) {
	if c.hdMode {
		return c.baseURL, [][2]string{
			{"prompt", prompt},
			{"style_id", "308"},
			{"aspect_ratio", "1:1"},
			{"variation", "txt2img"},
		}
	}
	return c.baseURL + "/turbo", [][2]string{
		{"prompt", prompt},
		{"lora_style", loraStyle},
		{"style_id", "1"},
		{"seed", c.seed},
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

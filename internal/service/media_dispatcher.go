package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mindful-escapades/internal/models"
)

// MediaRequest - что нужно проиллюстрировать и озвучить после хода.
type MediaRequest struct {
	ImagePrompt string
	ImageStyle  string
	VoiceText   string
	VoiceStyle  string
}

// MediaEnricher - то, что нужно сервису ходов от диспетчера медиа.
type MediaEnricher interface {
	ValidateStyles(imageStyle, voiceStyle string) error
	Enrich(ctx context.Context, req MediaRequest) (models.MediaBundle, error)
}

// MediaDispatcher получает картинку и озвучку для хода. Сбой провайдера
// никогда не прерывает ход: ассет просто остается без данных.
type MediaDispatcher struct {
	images            ImageProvider
	voices            SpeechProvider // nil - озвучка выключена
	defaultImageStyle string
	defaultVoiceStyle string
	logger            *zap.Logger
}

var _ MediaEnricher = (*MediaDispatcher)(nil)

// NewMediaDispatcher проверяет пресеты по умолчанию и создает диспетчер.
func NewMediaDispatcher(images ImageProvider, voices SpeechProvider, defaultImageStyle, defaultVoiceStyle string, logger *zap.Logger) (*MediaDispatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &MediaDispatcher{
		images:            images,
		voices:            voices,
		defaultImageStyle: defaultImageStyle,
		defaultVoiceStyle: defaultVoiceStyle,
		logger:            logger.Named("MediaDispatcher"),
	}
	if err := d.ValidateStyles("", ""); err != nil {
		return nil, fmt.Errorf("default style: %w", err)
	}
	return d, nil
}

// ValidateStyles сообщает ErrUnknownStyle до любых сетевых вызовов.
func (d *MediaDispatcher) ValidateStyles(imageStyle, voiceStyle string) error {
	if _, err := resolvePreset(models.MediaKindImage, imagePresets, imageStyle, d.defaultImageStyle); err != nil {
		return err
	}
	if _, err := resolvePreset(models.MediaKindVoice, voicePresets, voiceStyle, d.defaultVoiceStyle); err != nil {
		return err
	}
	return nil
}

// FetchImage генерирует картинку по описанию сцены. Ошибка возвращается только
// для неизвестного стиля; сбой провайдера записывается в asset.Error.
func (d *MediaDispatcher) FetchImage(ctx context.Context, prompt, style string) (*models.MediaAsset, error) {
	preset, err := resolvePreset(models.MediaKindImage, imagePresets, style, d.defaultImageStyle)
	if err != nil {
		return nil, err
	}
	asset := &models.MediaAsset{
		Kind:       models.MediaKindImage,
		Source:     prompt,
		Style:      preset.Name,
		ProviderID: preset.ProviderID,
	}
	if d.images == nil {
		return d.skip(asset, "image generation is disabled"), nil
	}
	return d.fetch(ctx, asset, func(ctx context.Context) ([]byte, string, error) {
		return d.images.GenerateImage(ctx, prompt, preset.ProviderID)
	}), nil
}

// FetchVoice озвучивает текст реплики. Семантика ошибок как у FetchImage.
func (d *MediaDispatcher) FetchVoice(ctx context.Context, text, style string) (*models.MediaAsset, error) {
	preset, err := resolvePreset(models.MediaKindVoice, voicePresets, style, d.defaultVoiceStyle)
	if err != nil {
		return nil, err
	}
	asset := &models.MediaAsset{
		Kind:       models.MediaKindVoice,
		Source:     text,
		Style:      preset.Name,
		ProviderID: preset.ProviderID,
	}
	if d.voices == nil {
		return d.skip(asset, "speech synthesis is disabled"), nil
	}
	return d.fetch(ctx, asset, func(ctx context.Context) ([]byte, string, error) {
		return d.voices.Synthesize(ctx, text, preset.ProviderID)
	}), nil
}

// Enrich запускает обе задачи параллельно и ждет обе. Задачи не делят
// состояние и не отменяют друг друга.
func (d *MediaDispatcher) Enrich(ctx context.Context, req MediaRequest) (models.MediaBundle, error) {
	var bundle models.MediaBundle
	if err := d.ValidateStyles(req.ImageStyle, req.VoiceStyle); err != nil {
		return bundle, err
	}

	var g errgroup.Group
	g.Go(func() error {
		asset, err := d.FetchImage(ctx, req.ImagePrompt, req.ImageStyle)
		bundle.Image = asset
		return err
	})
	g.Go(func() error {
		asset, err := d.FetchVoice(ctx, req.VoiceText, req.VoiceStyle)
		bundle.Voice = asset
		return err
	})
	err := g.Wait()
	return bundle, err
}

func (d *MediaDispatcher) fetch(ctx context.Context, asset *models.MediaAsset, call func(context.Context) ([]byte, string, error)) *models.MediaAsset {
	if strings.TrimSpace(asset.Source) == "" {
		return d.skip(asset, "nothing to render")
	}
	kind := string(asset.Kind)
	log := d.logger.With(zap.String("kind", kind), zap.String("style", asset.Style))

	start := time.Now()
	data, contentType, err := call(ctx)
	mediaFetchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		mediaFetchTotal.WithLabelValues(kind, "error").Inc()
		asset.Error = fmt.Errorf("%w: %v", models.ErrMediaFetch, err).Error()
		log.Warn("Медиа не получено, ход продолжается без него", zap.Error(err))
		return asset
	}
	mediaFetchTotal.WithLabelValues(kind, "success").Inc()
	asset.Data = data
	asset.ContentType = contentType
	log.Debug("Медиа получено", zap.Int("size_bytes", len(data)), zap.Duration("duration", time.Since(start)))
	return asset
}

func (d *MediaDispatcher) skip(asset *models.MediaAsset, reason string) *models.MediaAsset {
	mediaFetchTotal.WithLabelValues(string(asset.Kind), "skipped").Inc()
	asset.Error = reason
	return asset
}

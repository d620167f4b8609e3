package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mindful-escapades/internal/mocks"
	"mindful-escapades/internal/models"
	"mindful-escapades/internal/service"
)

var (
	fakePNG = []byte("\x89PNG\r\n\x1a\nimage")
	fakeMP3 = []byte("ID3audio")
)

func newDispatcher(t *testing.T, images service.ImageProvider, voices service.SpeechProvider) *service.MediaDispatcher {
	d, err := service.NewMediaDispatcher(images, voices, "Cinematic", "Emma", zap.NewNop())
	require.NoError(t, err)
	return d
}

func TestMediaDispatcher_EnrichResolvesPresets(t *testing.T) {
	images := mocks.NewMockImageProvider(t)
	voices := mocks.NewMockSpeechProvider(t)
	images.On("GenerateImage", mock.Anything, "a misty forest", "anime").Return(fakePNG, "image/png", nil).Once()
	voices.On("Synthesize", mock.Anything, "You enter the forest.", "en-US-EmmaMultilingualNeural").Return(fakeMP3, "audio/mpeg", nil).Once()

	d := newDispatcher(t, images, voices)
	bundle, err := d.Enrich(context.Background(), service.MediaRequest{
		ImagePrompt: "a misty forest",
		ImageStyle:  "anime",
		VoiceText:   "You enter the forest.",
	})
	require.NoError(t, err)

	require.True(t, bundle.Image.Available())
	assert.Equal(t, "Anime", bundle.Image.Style)
	assert.Equal(t, "anime", bundle.Image.ProviderID)
	assert.Equal(t, "image/png", bundle.Image.ContentType)
	require.True(t, bundle.Voice.Available())
	assert.Equal(t, "Emma", bundle.Voice.Style)
	assert.Equal(t, fakeMP3, bundle.Voice.Data)
}

func TestMediaDispatcher_UnknownStyleMakesNoCalls(t *testing.T) {
	images := mocks.NewMockImageProvider(t)
	voices := mocks.NewMockSpeechProvider(t)
	d := newDispatcher(t, images, voices)

	_, err := d.Enrich(context.Background(), service.MediaRequest{ImagePrompt: "x", ImageStyle: "Watercolor", VoiceText: "y"})
	assert.True(t, errors.Is(err, models.ErrUnknownStyle))

	_, err = d.FetchVoice(context.Background(), "y", "Siri")
	assert.True(t, errors.Is(err, models.ErrUnknownStyle))

	images.AssertNotCalled(t, "GenerateImage", mock.Anything, mock.Anything, mock.Anything)
	voices.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything, mock.Anything)
}

func TestMediaDispatcher_ProviderFailureIsAbsorbed(t *testing.T) {
	images := mocks.NewMockImageProvider(t)
	voices := mocks.NewMockSpeechProvider(t)
	images.On("GenerateImage", mock.Anything, mock.Anything, mock.Anything).Return(nil, "", errors.New("503 from image api")).Once()
	voices.On("Synthesize", mock.Anything, mock.Anything, mock.Anything).Return(fakeMP3, "audio/mpeg", nil).Once()

	d := newDispatcher(t, images, voices)
	bundle, err := d.Enrich(context.Background(), service.MediaRequest{ImagePrompt: "x", VoiceText: "y"})
	require.NoError(t, err)

	require.NotNil(t, bundle.Image)
	assert.False(t, bundle.Image.Available())
	assert.Contains(t, bundle.Image.Error, models.ErrMediaFetch.Error())
	assert.True(t, bundle.Voice.Available())
}

func TestMediaDispatcher_EmptyPromptSkipsCall(t *testing.T) {
	images := mocks.NewMockImageProvider(t)
	voices := mocks.NewMockSpeechProvider(t)
	d := newDispatcher(t, images, voices)

	asset, err := d.FetchImage(context.Background(), "   ", "")
	require.NoError(t, err)
	assert.False(t, asset.Available())
	assert.Equal(t, "Cinematic", asset.Style)
	assert.Equal(t, "cinematic lighting", asset.ProviderID)
	images.AssertNotCalled(t, "GenerateImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestMediaDispatcher_DisabledVoice(t *testing.T) {
	images := mocks.NewMockImageProvider(t)
	images.On("GenerateImage", mock.Anything, mock.Anything, mock.Anything).Return(fakePNG, "image/png", nil).Once()

	d := newDispatcher(t, images, nil)
	bundle, err := d.Enrich(context.Background(), service.MediaRequest{ImagePrompt: "x", VoiceText: "y", VoiceStyle: "neerja"})
	require.NoError(t, err)

	assert.True(t, bundle.Image.Available())
	require.NotNil(t, bundle.Voice)
	assert.False(t, bundle.Voice.Available())
	assert.Equal(t, "Neerja", bundle.Voice.Style)
}

func TestMediaDispatcher_FetchesRunConcurrently(t *testing.T) {
	images := mocks.NewMockImageProvider(t)
	voices := mocks.NewMockSpeechProvider(t)
	imageStarted := make(chan struct{})
	voiceStarted := make(chan struct{})

	// Каждая задача ждет начала другой: последовательное выполнение упрется в таймаут
	images.On("GenerateImage", mock.Anything, mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(imageStarted)
		select {
		case <-voiceStarted:
		case <-time.After(2 * time.Second):
			t.Error("voice fetch did not start while image fetch was running")
		}
	}).Return(fakePNG, "image/png", nil).Once()
	voices.On("Synthesize", mock.Anything, mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(voiceStarted)
		select {
		case <-imageStarted:
		case <-time.After(2 * time.Second):
			t.Error("image fetch did not start while voice fetch was running")
		}
	}).Return(fakeMP3, "audio/mpeg", nil).Once()

	d := newDispatcher(t, images, voices)
	bundle, err := d.Enrich(context.Background(), service.MediaRequest{ImagePrompt: "x", VoiceText: "y"})
	require.NoError(t, err)
	assert.True(t, bundle.Image.Available())
	assert.True(t, bundle.Voice.Available())
}

func TestNewMediaDispatcher_RejectsUnknownDefaults(t *testing.T) {
	_, err := service.NewMediaDispatcher(nil, nil, "Oil Painting", "Emma", nil)
	assert.True(t, errors.Is(err, models.ErrUnknownStyle))
}

func TestStyleLists(t *testing.T) {
	assert.Equal(t, []string{"Basic", "Anime", "Pixar", "Cinematic", "Raw"}, service.ImageStyles())
	assert.Equal(t, []string{"Andrew", "Ava", "Brian", "Emma", "Neerja"}, service.VoiceStyles())
}

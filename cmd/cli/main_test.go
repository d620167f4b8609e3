package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mindful-escapades/internal/app"
	"mindful-escapades/internal/config"
	"mindful-escapades/internal/presenter"
	"mindful-escapades/internal/session"
)

// fakeModel отвечает заранее заданными ответами по очереди.
func fakeModel(t *testing.T, replies ...string) *httptest.Server {
	var calls int32
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		i := int(atomic.AddInt32(&calls, 1)) - 1
		if i >= len(replies) {
			t.Errorf("unexpected model call #%d", i+1)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		content, _ := json.Marshal(replies[i])
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"c%d","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":%s},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`, i, content)
	}))
}

func newTestPipeline(t *testing.T, modelURL string) *app.Pipeline {
	images := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG\r\n\x1a\n"))
	}))
	t.Cleanup(images.Close)

	cfg := &config.Config{
		Image: config.ImageConfig{BaseURL: images.URL, Timeout: time.Second, DefaultStyle: "Cinematic", Seed: "12345"},
		Voice: config.VoiceConfig{Enabled: false, DefaultStyle: "Emma"},
		AI:    config.AIConfig{ClientType: "openai", BaseURL: modelURL, Model: "gemini-1.5-flash-latest", Temperature: 2, Timeout: time.Second, APIKey: "k"},
	}
	p, err := app.NewPipeline(cfg, session.NewInMemoryStore(), zap.NewNop())
	require.NoError(t, err)
	return p
}

func TestPlay_RunsUntilEnding(t *testing.T) {
	model := fakeModel(t,
		`{"story_title":"the cave","dialog_prompt":"A bat flies by.","image_prompt":"dark cave","status":"ongoing","sentiment":"positive"}`,
		`{"dialog_prompt":"You fall into a pit.","status":"bad_ending","sentiment":"negative"}`,
	)
	defer model.Close()

	var out bytes.Buffer
	input := bufio.NewScanner(strings.NewReader("duck\njump\nnever read\n"))
	score, err := play(context.Background(), newTestPipeline(t, model.URL), presenter.NewConsole(&out), input)
	require.NoError(t, err)

	assert.Equal(t, 0, score)
	text := out.String()
	assert.Contains(t, text, presenter.WelcomeBanner)
	assert.Contains(t, text, "Score increased: 1")
	assert.Contains(t, text, "Score decreased: 0")
	assert.Contains(t, text, presenter.BadEnding)
	assert.Equal(t, 2, strings.Count(text, presenter.InputPrompt))
}

func TestPlay_StopAndReset(t *testing.T) {
	model := fakeModel(t,
		`{"dialog_prompt":"Good move.","status":"ongoing","sentiment":"positive"}`,
	)
	defer model.Close()

	var out bytes.Buffer
	input := bufio.NewScanner(strings.NewReader("think\nreset\n\nSTOP\n"))
	score, err := play(context.Background(), newTestPipeline(t, model.URL), presenter.NewConsole(&out), input)
	require.NoError(t, err)

	assert.Equal(t, 0, score)
	assert.Contains(t, out.String(), "Score increased: 1")
	assert.Contains(t, out.String(), "The story starts over.")
}

func TestPlay_TransportErrorKeepsPlaying(t *testing.T) {
	var calls int32
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"dialog_prompt\":\"ok\",\"status\":\"good_ending\",\"sentiment\":\"positive\"}"}}],"usage":{"prompt_tokens":1}}`))
	}))
	defer model.Close()

	var out bytes.Buffer
	input := bufio.NewScanner(strings.NewReader("hello\nhello\n"))
	score, err := play(context.Background(), newTestPipeline(t, model.URL), presenter.NewConsole(&out), input)
	require.NoError(t, err)

	assert.Equal(t, 1, score)
	assert.Contains(t, out.String(), "The narrator did not answer.")
	assert.Contains(t, out.String(), presenter.GoodEnding)
}

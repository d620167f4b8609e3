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
	"mindful-escapades/internal/session"
)

const testSystemPrompt = "You are a narrator."

func newBackend(t *testing.T) *mocks.MockChatBackend {
	backend := mocks.NewMockChatBackend(t)
	backend.On("Model").Return("test-model").Maybe()
	return backend
}

func TestNarrativeClient_AdvanceSendsHistoryInOrder(t *testing.T) {
	backend := newBackend(t)
	client, err := service.NewNarrativeClient(backend, testSystemPrompt, time.Second, zap.NewNop())
	require.NoError(t, err)

	st := session.New()
	st.AppendExchange("look around", `{"dialog_prompt":"a room"}`, time.Now())

	expected := []service.ChatMessage{
		{Role: service.RoleSystem, Content: testSystemPrompt},
		{Role: service.RoleUser, Content: "look around"},
		{Role: service.RoleAssistant, Content: `{"dialog_prompt":"a room"}`},
		{Role: service.RoleUser, Content: "open the door"},
	}
	backend.On("Chat", mock.Anything, expected).
		Return(service.ChatResult{Content: `{"dialog_prompt":"a hall"}`, PromptTokens: 42}, nil).Once()

	reply, err := client.Advance(context.Background(), st, "open the door")
	require.NoError(t, err)

	assert.Equal(t, `{"dialog_prompt":"a hall"}`, reply)
	require.Len(t, st.History, 2)
	assert.Equal(t, "open the door", st.History[1].Utterance)
	assert.Equal(t, reply, st.History[1].Reply)
	assert.Equal(t, 2, st.TurnCount)
}

func TestNarrativeClient_TerminalSessionMakesNoCall(t *testing.T) {
	backend := newBackend(t)
	client, err := service.NewNarrativeClient(backend, testSystemPrompt, time.Second, nil)
	require.NoError(t, err)

	st := session.New()
	st.SetStatus(models.StatusBadEnding)

	_, err = client.Advance(context.Background(), st, "try again")
	assert.True(t, errors.Is(err, models.ErrSessionTerminated))
	backend.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
	assert.Empty(t, st.History)
}

func TestNarrativeClient_BackendErrorIsTransportAndLeavesState(t *testing.T) {
	backend := newBackend(t)
	client, err := service.NewNarrativeClient(backend, testSystemPrompt, time.Second, zap.NewNop())
	require.NoError(t, err)

	backend.On("Chat", mock.Anything, mock.Anything).
		Return(service.ChatResult{}, errors.New("connection refused")).Once()

	st := session.New()
	_, err = client.Advance(context.Background(), st, "hello")

	assert.True(t, errors.Is(err, models.ErrTransport))
	assert.Empty(t, st.History)
	assert.Equal(t, 0, st.TurnCount)
}

func TestNarrativeClient_TimeoutIsTransport(t *testing.T) {
	backend := newBackend(t)
	client, err := service.NewNarrativeClient(backend, testSystemPrompt, 20*time.Millisecond, zap.NewNop())
	require.NoError(t, err)

	backend.On("Chat", mock.Anything, mock.Anything).Return(
		func(ctx context.Context, _ []service.ChatMessage) service.ChatResult {
			<-ctx.Done()
			return service.ChatResult{}
		},
		func(ctx context.Context, _ []service.ChatMessage) error {
			return ctx.Err()
		},
	).Once()

	st := session.New()
	_, err = client.Advance(context.Background(), st, "hello")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrTransport))
	assert.Empty(t, st.History)
}

func TestNarrativeClient_EmptyReplyIsPassedThrough(t *testing.T) {
	backend := newBackend(t)
	client, err := service.NewNarrativeClient(backend, testSystemPrompt, 0, zap.NewNop())
	require.NoError(t, err)

	backend.On("Chat", mock.Anything, mock.Anything).
		Return(service.ChatResult{Content: "", PromptTokens: 5}, nil).Once()

	st := session.New()
	reply, err := client.Advance(context.Background(), st, "hello")
	require.NoError(t, err)
	assert.Equal(t, "", reply)
	assert.Len(t, st.History, 1)
}

func TestNewNarrativeClient_Validation(t *testing.T) {
	_, err := service.NewNarrativeClient(nil, testSystemPrompt, time.Second, nil)
	assert.Error(t, err)

	_, err = service.NewNarrativeClient(newBackend(t), "   ", time.Second, nil)
	assert.Error(t, err)
}

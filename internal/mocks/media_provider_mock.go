package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mindful-escapades/internal/service"
)

// MockImageProvider is a mock type for the ImageProvider type
type MockImageProvider struct {
	mock.Mock
}

// GenerateImage provides a mock function with given fields: ctx, prompt, loraStyle
func (_m *MockImageProvider) GenerateImage(ctx context.Context, prompt, loraStyle string) ([]byte, string, error) {
	ret := _m.Called(ctx, prompt, loraStyle)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.String(1), ret.Error(2)
}

// NewMockImageProvider creates a new instance of MockImageProvider.
func NewMockImageProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockImageProvider {
	m := &MockImageProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ service.ImageProvider = (*MockImageProvider)(nil)

// MockSpeechProvider is a mock type for the SpeechProvider type
type MockSpeechProvider struct {
	mock.Mock
}

// Synthesize provides a mock function with given fields: ctx, text, voiceID
func (_m *MockSpeechProvider) Synthesize(ctx context.Context, text, voiceID string) ([]byte, string, error) {
	ret := _m.Called(ctx, text, voiceID)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.String(1), ret.Error(2)
}

// NewMockSpeechProvider creates a new instance of MockSpeechProvider.
func NewMockSpeechProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSpeechProvider {
	m := &MockSpeechProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ service.SpeechProvider = (*MockSpeechProvider)(nil)

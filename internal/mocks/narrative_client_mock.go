package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mindful-escapades/internal/service"
	"mindful-escapades/internal/session"
)

// MockNarrativeClient is a mock type for the NarrativeClient type
type MockNarrativeClient struct {
	mock.Mock
}

// Advance provides a mock function with given fields: ctx, state, utterance
func (_m *MockNarrativeClient) Advance(ctx context.Context, state *session.State, utterance string) (string, error) {
	ret := _m.Called(ctx, state, utterance)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, *session.State, string) string); ok {
		r0 = rf(ctx, state, utterance)
	} else {
		r0 = ret.String(0)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, *session.State, string) error); ok {
		r1 = rf(ctx, state, utterance)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockNarrativeClient creates a new instance of MockNarrativeClient.
func NewMockNarrativeClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNarrativeClient {
	m := &MockNarrativeClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ service.NarrativeClient = (*MockNarrativeClient)(nil)

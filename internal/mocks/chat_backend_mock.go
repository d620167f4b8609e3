package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mindful-escapades/internal/service"
)

// MockChatBackend is a mock type for the ChatBackend type
type MockChatBackend struct {
	mock.Mock
}

// Chat provides a mock function with given fields: ctx, messages
func (_m *MockChatBackend) Chat(ctx context.Context, messages []service.ChatMessage) (service.ChatResult, error) {
	ret := _m.Called(ctx, messages)

	var r0 service.ChatResult
	if rf, ok := ret.Get(0).(func(context.Context, []service.ChatMessage) service.ChatResult); ok {
		r0 = rf(ctx, messages)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(service.ChatResult)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, []service.ChatMessage) error); ok {
		r1 = rf(ctx, messages)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Model provides a mock function with no fields
func (_m *MockChatBackend) Model() string {
	ret := _m.Called()
	return ret.String(0)
}

// NewMockChatBackend creates a new instance of MockChatBackend. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockChatBackend(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockChatBackend {
	m := &MockChatBackend{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ service.ChatBackend = (*MockChatBackend)(nil)

package health

import (
	"context"

	"github.com/stringfold/ally/pkg/logger"

	"github.com/stretchr/testify/mock"
)

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockLogger struct{}

func (m *MockLogger) Info(ctx context.Context, msg string, fields ...logger.Field) {}

func (m *MockLogger) Error(ctx context.Context, msg string, fields ...logger.Field) {}

func (m *MockLogger) Debug(ctx context.Context, msg string, fields ...logger.Field) {}

func (m *MockLogger) Warn(ctx context.Context, msg string, fields ...logger.Field) {}

func (m *MockLogger) With(fields ...logger.Field) logger.Logger {
	return m
}

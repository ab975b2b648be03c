package services

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEnhancer is a mock for the SummaryEnhancer interface
type MockEnhancer struct {
	mock.Mock
}

func (m *MockEnhancer) Enhance(ctx context.Context, areas []string, base string) string {
	args := m.Called(ctx, areas, base)
	return args.String(0)
}

package mock

import (
	"context"
	"sync/atomic"
)

// MockDescriber is a test double for ai.Describer.
// It allows custom behavior injection via function fields.
type MockDescriber struct {
	// DescribeImageFunc is called by DescribeImage if set.
	// If nil, a fixed placeholder description is returned.
	DescribeImageFunc func(ctx context.Context, mimeType string, image []byte) (string, error)

	callCount atomic.Int64
}

// NewMockDescriber creates a mock describer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockDescriber() *MockDescriber {
	return &MockDescriber{}
}

// DescribeImage returns a canned garment description.
func (m *MockDescriber) DescribeImage(ctx context.Context, mimeType string, image []byte) (string, error) {
	m.callCount.Add(1)

	if m.DescribeImageFunc != nil {
		return m.DescribeImageFunc(ctx, mimeType, image)
	}

	return "a plain cotton garment", nil
}

// CallCount returns the number of times DescribeImage was called.
func (m *MockDescriber) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and injected behavior.
func (m *MockDescriber) Reset() {
	m.callCount.Store(0)
	m.DescribeImageFunc = nil
}

package zellij

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockRunner is a mock implementation of Runner for testing.
// It uses testify/mock to provide flexible behavior configuration and
// method call tracking for assertions.
//
// Example usage:
//
//	runner := new(MockRunner)
//	runner.On("Run", []string{"action", "query-tab-names"}).Return("Tab #1\n", "", nil)
//
//	stdout, _, err := runner.Run(time.Second, "action", "query-tab-names")
//	assert.NoError(t, err)
//	assert.Equal(t, "Tab #1\n", stdout)
//
// The timeout is not part of the expectation; match on the argument slice.
type MockRunner struct {
	mock.Mock
}

// Run returns mocked stdout, stderr, and error for a zellij invocation.
func (m *MockRunner) Run(timeout time.Duration, args ...string) (string, string, error) {
	ret := m.Called(args)
	return ret.String(0), ret.String(1), ret.Error(2)
}

package mocks

import (
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// register asserts the mock's expectations when the test finishes.
func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func get[T any](ret mock.Arguments, i int) T {
	var zero T
	if v := ret.Get(i); v != nil {
		return v.(T)
	}
	return zero
}

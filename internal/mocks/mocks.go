// Package mocks provides testify mocks for the interfaces in model and the
// api layer.
package mocks

import "github.com/stretchr/testify/mock"

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type expecter interface {
	Test(mock.TestingT)
	AssertExpectations(mock.TestingT) bool
}

// register binds m to t and asserts its expectations when the test ends.
func register(t testingT, m expecter) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

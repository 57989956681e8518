package mocks

import (
	"fmt"

	"github.com/user/yuvenc/pkg/ports"
)

// Logger is a mock implementation of ports.Logger recording every
// formatted message by level.
type Logger struct {
	DebugMessages []string
	InfoMessages  []string
	WarnMessages  []string
	ErrorMessages []string
}

func (m *Logger) Debug(msg string, args ...interface{}) {
	m.DebugMessages = append(m.DebugMessages, fmt.Sprintf(msg, args...))
}

func (m *Logger) Info(msg string, args ...interface{}) {
	m.InfoMessages = append(m.InfoMessages, fmt.Sprintf(msg, args...))
}

func (m *Logger) Warn(msg string, args ...interface{}) {
	m.WarnMessages = append(m.WarnMessages, fmt.Sprintf(msg, args...))
}

func (m *Logger) Error(msg string, args ...interface{}) {
	m.ErrorMessages = append(m.ErrorMessages, fmt.Sprintf(msg, args...))
}

func (m *Logger) WithComponent(component string) ports.Logger {
	return m
}

var _ ports.Logger = (*Logger)(nil)

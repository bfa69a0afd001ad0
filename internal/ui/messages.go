package ui

import (
	"blockcanvas/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// outlinePagerMsg contains the result of the outline pager command
type outlinePagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause rendering while the pager owns the terminal
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume rendering
type resumeRenderingMsg struct{}

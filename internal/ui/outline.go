package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// OutlinePager shows the document outline in the ov pager
type OutlinePager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewOutlinePager creates a new outline pager
func NewOutlinePager(program *tea.Program) *OutlinePager {
	return &OutlinePager{
		program: program,
	}
}

// SetProgram sets the program whose terminal the pager borrows
func (o *OutlinePager) SetProgram(p *tea.Program) {
	o.program = p
}

// Show pages content until the user quits ov
func (o *OutlinePager) Show(content string) error {
	if o.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := o.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = o.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Don't write the outline back to our screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

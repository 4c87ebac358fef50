package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/soham247/stellar-portfolio/internal/carousel"
	"github.com/soham247/stellar-portfolio/internal/contact"
)

// FrameMsg carries the carousel state after a loop frame.
type FrameMsg carousel.State

// SubmitResultMsg carries the outcome of a contact form submission.
type SubmitResultMsg struct {
	Status contact.Status
}

// WaitForFrameCmd blocks until the loop publishes a frame. It returns nil
// once ctx is done, which ends the chain of frame commands.
func WaitForFrameCmd(ctx context.Context, updates <-chan carousel.State) tea.Cmd {
	return func() tea.Msg {
		select {
		case st := <-updates:
			return FrameMsg(st)
		case <-ctx.Done():
			return nil
		}
	}
}

// SubmitCmd sends the form in the background.
func SubmitCmd(ctx context.Context, s Submitter, client string, f contact.Form) tea.Cmd {
	return func() tea.Msg {
		return SubmitResultMsg{Status: s.Submit(ctx, client, f)}
	}
}

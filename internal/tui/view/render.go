// Package view provides view composition helpers for the TUI.
package view

import "github.com/charmbracelet/lipgloss"

// Screen is one composed frame: the board plus an optional modal.
type Screen struct {
	Width       int
	Height      int
	Base        string
	Modal       string
	ModalBg     lipgloss.Color
	Placeholder string
}

// Render composes the final view output.
func Render(s Screen) string {
	if s.Width == 0 || s.Height == 0 {
		if s.Placeholder != "" {
			return s.Placeholder
		}
		return "Loading..."
	}
	if s.Modal == "" {
		return s.Base
	}
	return overlay(s.Base, s.Modal, s.Width, s.Height, s.ModalBg)
}

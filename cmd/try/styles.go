package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

type listStyles struct {
	Date   lipgloss.Style
	Name   lipgloss.Style
	Match  lipgloss.Style
	Age    lipgloss.Style
	Score  lipgloss.Style
	Header lipgloss.Style
}

// newListStyles renders for w. Without colours every style is plain.
func newListStyles(w io.Writer, colors bool) listStyles {
	r := lipgloss.NewRenderer(w)
	if !colors {
		plain := r.NewStyle()
		return listStyles{Date: plain, Name: plain, Match: plain, Age: plain, Score: plain, Header: plain}
	}
	return listStyles{
		Date:   r.NewStyle().Foreground(lipgloss.Color("241")),
		Name:   r.NewStyle(),
		Match:  r.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Age:    r.NewStyle().Foreground(lipgloss.Color("245")),
		Score:  r.NewStyle().Foreground(lipgloss.Color("241")),
		Header: r.NewStyle().Bold(true).Underline(true),
	}
}

// printError writes a one-line error for the user.
func printError(w io.Writer, err error) {
	label := lipgloss.NewRenderer(w).NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true).
		Render("Error:")
	fmt.Fprintf(w, "%s %v\n", label, err)
}

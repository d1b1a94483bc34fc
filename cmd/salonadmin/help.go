package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

func printHelp(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f2b65a")).
		Bold(true).
		Render("S A L O N P R O   A D M I N")

	sub := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Super admin console for the salon platform.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"salonadmin", "Open the console (interactive TUI)"},
		{"salonadmin login", "Sign in with email and password"},
		{"salonadmin logout", "Clear the stored session"},
		{"salonadmin whoami", "Show the stored session"},
		{"salonadmin --version", "Show version"},
		{"salonadmin help", "You are here"},
	}

	fmt.Fprintf(w, "\n  %s\n  %s\n\n  Commands:\n", title, sub)
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}

	env := []struct{ key, desc string }{
		{"SALONADMIN_API_URL", "API root (also VITE_API_URL)"},
		{"SALONADMIN_CONFIG", "YAML config file"},
		{"SALONADMIN_LOG_LEVEL", "debug, info, warn or error"},
		{"SALONADMIN_TIMEOUT", "request timeout, e.g. 15s"},
	}
	fmt.Fprintf(w, "\n  Environment:\n")
	for _, e := range env {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", e.key)), descStyle.Render(e.desc))
	}
	fmt.Fprintln(w)
}

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf(format, args...)))
}

func failure(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, errorStyle.Render("ERROR: "+fmt.Sprintf(format, args...)))
}

func warning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf(format, args...)))
}

func formatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f", *p)
}

func printItems(w io.Writer, items []domain.WishlistItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, subtleStyle.Render("Your wishlist is empty."))
		return
	}

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("My Wishlist (%d)", len(items))))
	fmt.Fprintln(w, subtleStyle.Render(fmt.Sprintf("%-24s  %-36s  %-12s  %9s  %9s  %s",
		"ID", "TITLE", "MARKETPLACE", "PRICE", "WAS", "ADDED")))
	for _, it := range items {
		fmt.Fprintf(w, "%-24s  %-36s  %-12s  %9s  %9s  %s\n",
			it.ID, truncate(it.Title, 36), it.Marketplace, formatPrice(it.SalePrice), formatPrice(it.OriginalPrice), it.AddedAtLabel())
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

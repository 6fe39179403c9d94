package main

import (
	"fmt"
	"io"

	"github.com/ressharu/menu-bot/internal/board"
	"github.com/ressharu/menu-bot/internal/menu"
)

// renderBoard prints the requested buckets of the board as plain text
func renderBoard(w io.Writer, b board.Board, classifier *menu.Classifier, week string) {
	if week == "current" || week == "both" {
		renderBucket(w, "📅 This week", b.CurrentWeek, classifier)
	}
	if week == "other" || week == "both" {
		renderBucket(w, "📅 Other weeks", b.OtherWeek, classifier)
	}
}

// renderBucket prints one bucket: for every record, one line per day
// pairing the day and its weekday with the daily special. Days whose
// caption was lost upstream print with an empty caption column.
func renderBucket(w io.Writer, title string, menus []menu.WeeklyMenu, classifier *menu.Classifier) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "═══════════════════════════════════════")

	if len(menus) == 0 {
		fmt.Fprintln(w, "  (no menus)")
		fmt.Fprintln(w)
		return
	}

	for _, m := range menus {
		for i, day := range m.Days {
			label := classifier.WeekdayLabel(m.Month, day)
			fmt.Fprintf(w, "  %2d/%-2d %s  %s\n", m.Month, day, label, m.Caption(i))
		}
	}
	fmt.Fprintln(w)
}

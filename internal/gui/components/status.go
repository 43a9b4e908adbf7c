package components

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	countsLabel *widget.Label
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Ready")
	statusLabel.Truncation = fyne.TextTruncateEllipsis
	countsLabel := widget.NewLabel(formatCounts(""))

	mainContainer := container.NewBorder(
		nil, nil,
		nil,
		countsLabel,
		statusLabel,
	)

	return &StatusBar{
		container:   mainContainer,
		statusLabel: statusLabel,
		countsLabel: countsLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) Status() string {
	return sb.statusLabel.Text
}

// SetCounts shows line and character totals for text.
func (sb *StatusBar) SetCounts(text string) {
	sb.countsLabel.SetText(formatCounts(text))
}

func (sb *StatusBar) Counts() string {
	return sb.countsLabel.Text
}

func formatCounts(text string) string {
	lines := 0
	if text != "" {
		lines = strings.Count(text, "\n")
		if !strings.HasSuffix(text, "\n") {
			lines++
		}
	}
	return fmt.Sprintf("Lines: %d  Chars: %d", lines, len([]rune(text)))
}

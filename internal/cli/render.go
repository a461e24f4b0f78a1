package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// writeJSON emits v as indented JSON, matching the service's field names so
// output can round-trip into other tools.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// renderer writes labelled human-readable output.
type renderer struct {
	w io.Writer

	titleStyle lipgloss.Style
	labelStyle lipgloss.Style
	valueStyle lipgloss.Style
	goodStyle  lipgloss.Style
	warnStyle  lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{
		w:          w,
		titleStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		labelStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		valueStyle: lipgloss.NewStyle(),
		goodStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		warnStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

func (r *renderer) title(s string) {
	fmt.Fprintln(r.w, r.titleStyle.Render(s))
}

func (r *renderer) field(label, value string) {
	fmt.Fprintf(r.w, "  %s %s\n", r.labelStyle.Render(pad(label+":", 16)), r.valueStyle.Render(value))
}

func (r *renderer) good(label, value string) {
	fmt.Fprintf(r.w, "  %s %s\n", r.labelStyle.Render(pad(label+":", 16)), r.goodStyle.Render(value))
}

func (r *renderer) warn(s string) {
	fmt.Fprintf(r.w, "  %s\n", r.warnStyle.Render("! "+s))
}

func (r *renderer) blank() {
	fmt.Fprintln(r.w)
}

func pad(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}

package cli

import (
	"fmt"
	"text/template"
)

// render executes a display template against the terminal writer.
func (c *Cli) render(name, tmpl string, data any) error {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	if err := t.Execute(c.io, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

// formatCents renders a cent amount as a decimal string, e.g. 1250 -> "12.50".
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

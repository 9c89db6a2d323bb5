// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"image/color"
	"os"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/tfctl/treediff/internal/config"
	"github.com/tfctl/treediff/internal/differ"
)

// palette holds the styles for changed lines. The zero value paints nothing.
type palette struct {
	enabled bool
	del     lipgloss.Style
	ins     lipgloss.Style
}

func newPalette() palette {
	del, ins := getColors("color")
	return palette{
		enabled: true,
		// Tabs carry the depth in the display form and must survive styling.
		del: lipgloss.NewStyle().Foreground(del).TabWidth(lipgloss.NoTabConversion),
		ins: lipgloss.NewStyle().Foreground(ins).TabWidth(lipgloss.NoTabConversion),
	}
}

func (p palette) paint(op differ.Op, s string) string {
	if !p.enabled {
		return s
	}
	switch op {
	case differ.Delete:
		return p.del.Render(s)
	case differ.Insert:
		return p.ins.Render(s)
	default:
		return s
	}
}

// getColors returns the delete and insert colors. Explicit values under key
// in the config file win; otherwise the defaults are picked for the terminal
// background.
func getColors(key string) (del, ins color.Color) {
	var isDark *bool

	resolveColor := func(key string, light string, dark string) color.Color {
		if colorCfg, err := config.GetString(key); err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark == nil {
			d := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)
			isDark = &d
		}
		if *isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	del = resolveColor(key+".delete", "#af0000", "#ff5f5f")
	ins = resolveColor(key+".insert", "#008700", "#5fff5f")
	return
}

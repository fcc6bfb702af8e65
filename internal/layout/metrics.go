package layout

import "github.com/plantgo/plantgo/internal/font"

// textSize measures text at the config's font size, falling back to a
// zero size if the embedded font fails to parse (never happens in
// practice; font.MeasureText only errors on a malformed embedded TTF).
func textSize(cfg Config, text string) font.Size {
	size, err := font.MeasureText(text, cfg.FontSize, font.FamilySans)
	if err != nil {
		return font.Size{}
	}
	return size
}

func textWidth(cfg Config, text string) float64 {
	return textSize(cfg, text).Width
}

func textHeight(cfg Config, text string) float64 {
	return textSize(cfg, text).Height
}

// lineCount returns the number of lines in a (possibly multi-line) label.
func lineCount(text string) int {
	if text == "" {
		return 0
	}
	n := 1
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	return n
}

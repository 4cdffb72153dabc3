package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`        _              _                       `, "#818cf8"},
	{`   __ _| | __ _  ___ | |_ _ __ __ _  ___ ___ `, "#a78bfa"},
	{`  / _' | |/ _' |/ _ \| __| '__/ _' |/ __/ _ \`, "#c084fc"},
	{` | (_| | | (_| | (_) | |_| | | (_| | (_|  __/`, "#e879f9"},
	{`  \__,_|_|\__, |\___/ \__|_|  \__,_|\___\___|`, "#f472b6"},
	{`          |___/                              `, "#fb7185"},
}

// PrintBanner writes the algotrace banner to w using the terminal's color profile.
func PrintBanner(w io.Writer) {
	PrintBannerWithProfile(w, termenv.ColorProfile())
}

// PrintBannerWithProfile writes the banner with an explicit color profile.
func PrintBannerWithProfile(w io.Writer, p termenv.Profile) {
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

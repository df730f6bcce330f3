package gravy

import (
	"strings"
)

// Warning is a non-fatal problem met during extraction, such as a page that
// could not be read or an element with an invalid box. Page is zero when
// the warning concerns the whole document; the message names the page
// otherwise.
type Warning struct {
	Page    int
	Message string
}

func (w Warning) String() string {
	return w.Message
}

func warningFor(page int, err error) Warning {
	return Warning{Page: page, Message: err.Error()}
}

// FormatWarnings joins warnings one per line
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

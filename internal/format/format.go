// Package format renders backend values for display. It never derives
// state that is persisted anywhere.
package format

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/creamcroissant/trackerctl/internal/model"
)

var printer = message.NewPrinter(language.English)

// Bytes renders a byte counter with decimal units, e.g. "1.6 TB".
func Bytes(n int64) string {
	if n < 0 {
		return "-" + humanize.Bytes(uint64(-n))
	}
	return humanize.Bytes(uint64(n))
}

// Ratio renders uploaded/downloaded with two decimals, "Inf" when nothing
// was downloaded.
func Ratio(uploaded, downloaded int64) string {
	if downloaded <= 0 {
		return "Inf"
	}
	return strconv.FormatFloat(float64(uploaded)/float64(downloaded), 'f', 2, 64)
}

// Count renders an integer with thousands separators.
func Count(n int64) string {
	return printer.Sprintf("%d", n)
}

// Points renders a bonus point balance.
func Points(p float64) string {
	return printer.Sprintf("%.2f", p)
}

// Multiplier renders a traffic multiplier, "off" when the direction is not
// counted.
func Multiplier(m float64) string {
	if m == 0 {
		return "off"
	}
	return fmt.Sprintf("%gx", m)
}

// Time renders a timestamp in UTC, empty for the zero time. Values the
// backend sent in an unknown layout are shown as received.
func Time(t model.Timestamp) string {
	if t.Time.IsZero() {
		return t.Raw
	}
	return t.UTC().Format("2006-01-02 15:04")
}

// Expiry renders an optional expiry, "permanent" when unset.
func Expiry(t *model.Timestamp) string {
	if t == nil {
		return "permanent"
	}
	return Time(*t)
}

// Duration renders a seed time given in seconds.
func Duration(seconds int64) string {
	return (time.Duration(seconds) * time.Second).String()
}

// Bool renders a flag as yes/no.
func Bool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const filenamePrefix = "solar-report-"

// shortDateLayouts maps a locale to its short numeric date form.
var shortDateLayouts = map[string]string{
	"en-US": "1/2/2006",
	"en-GB": "02/01/2006",
	"en-AU": "2/1/2006",
	"en":    "1/2/2006",
	"de":    "2.1.2006",
	"fr":    "02/01/2006",
	"es":    "2/1/2006",
	"it":    "2/1/2006",
	"nl":    "2-1-2006",
	"ja":    "2006/1/2",
}

// Formatter renders numbers and dates the way the viewer's locale expects.
type Formatter struct {
	tag            language.Tag
	printer        *message.Printer
	currencySymbol string
	decimalSep     string
	location       *time.Location
}

func NewFormatter(locale, currencySymbol string, location *time.Location) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	if location == nil {
		location = time.Local
	}

	printer := message.NewPrinter(tag)
	half := printer.Sprint(number.Decimal(1.5))

	return Formatter{
		tag:            tag,
		printer:        printer,
		currencySymbol: currencySymbol,
		decimalSep:     half[1 : len(half)-1],
		location:       location,
	}
}

// Currency groups thousands and keeps at most three fraction digits,
// without padding: 156000 -> $156,000, 1234.5 -> $1,234.5, -500 -> -$500.
// The whole part must fit in an int64; Validate rejects larger revenue.
func (f Formatter) Currency(amount decimal.Decimal) string {
	rounded := amount.Round(3)
	abs := rounded.Abs()
	whole := abs.Truncate(0)

	out := f.currencySymbol + f.printer.Sprint(number.Decimal(whole.IntPart()))
	if frac := abs.Sub(whole); !frac.IsZero() {
		out += f.decimalSep + strings.TrimPrefix(frac.String(), "0.")
	}
	if rounded.Sign() < 0 {
		out = "-" + out
	}
	return out
}

// Percent rounds to an integer: 68 -> 68%.
func (f Formatter) Percent(v float64) string {
	return fmt.Sprintf("%d%%", int64(math.Round(v)))
}

func (f Formatter) Count(n int) string {
	return strconv.Itoa(n)
}

// ShortDate formats t in the viewer's short date form; unknown locales get ISO dates.
func (f Formatter) ShortDate(t time.Time) string {
	t = t.In(f.location)
	if layout, ok := shortDateLayouts[f.tag.String()]; ok {
		return t.Format(layout)
	}
	base, _ := f.tag.Base()
	if layout, ok := shortDateLayouts[base.String()]; ok {
		return t.Format(layout)
	}
	return t.Format(time.DateOnly)
}

// Filename returns solar-report-<YYYY-MM-DD>.<ext> for the date of t in the formatter's location.
func (f Formatter) Filename(t time.Time, format domain.Format) string {
	return filenamePrefix + t.In(f.location).Format(time.DateOnly) + "." + format.Extension()
}

package history

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// Formatter renders entry timestamps the way the storefront shows them:
// relative phrasing for recent entries, absolute day-month for older ones,
// with the year appended only when it differs from the current year.
type Formatter struct {
	// Locale selects the phrasing. Russian is the storefront default;
	// anything else falls back to English.
	Locale language.Tag

	// Now is a clock seam for tests; time.Now when nil.
	Now func() time.Time
}

var ruMonths = [...]string{
	"янв", "фев", "мар", "апр", "мая", "июн",
	"июл", "авг", "сен", "окт", "ноя", "дек",
}

func (f Formatter) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f Formatter) russian() bool {
	base, _ := f.Locale.Base()
	return base.String() == "ru"
}

// Format renders an RFC 3339 timestamp relative to the formatter's clock.
// Unparseable input is returned unchanged.
func (f Formatter) Format(createdAt string) string {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return createdAt
	}

	now := f.now()
	diff := now.Sub(t)
	ru := f.russian()

	switch {
	case diff < time.Minute:
		if ru {
			return "Только что"
		}
		return "Just now"
	case diff < time.Hour:
		n := int(diff / time.Minute)
		if ru {
			return fmt.Sprintf("%d мин назад", n)
		}
		return fmt.Sprintf("%d min ago", n)
	case diff < 24*time.Hour:
		n := int(diff / time.Hour)
		if ru {
			return fmt.Sprintf("%d ч назад", n)
		}
		return fmt.Sprintf("%d h ago", n)
	case diff < 48*time.Hour:
		if ru {
			return "Вчера"
		}
		return "Yesterday"
	case diff < 7*24*time.Hour:
		n := int(diff / (24 * time.Hour))
		if ru {
			return fmt.Sprintf("%d дн назад", n)
		}
		return fmt.Sprintf("%d days ago", n)
	}

	if ru {
		if t.Year() != now.Year() {
			return fmt.Sprintf("%d %s %d", t.Day(), ruMonths[t.Month()-1], t.Year())
		}
		return fmt.Sprintf("%d %s", t.Day(), ruMonths[t.Month()-1])
	}
	if t.Year() != now.Year() {
		return t.Format("2 Jan 2006")
	}
	return t.Format("2 Jan")
}

package core

import (
	"net/url"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// Query parameter names understood by the list endpoint.
const (
	ParamCategory = "category"
	ParamSearch   = "q"
	ParamFrom     = "from"
	ParamTo       = "to"
)

// Period shortcuts for the date range of a filter.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

const dateLayout = "2006-01-02"

// Filter holds the four optional list filters.
type Filter struct {
	Category string
	Search   string
	From     string
	To       string
}

// FilterFromValues reads the filter fields from form or query values.
func FilterFromValues(v url.Values) Filter {
	return Filter{
		Category: v.Get(ParamCategory),
		Search:   v.Get(ParamSearch),
		From:     v.Get(ParamFrom),
		To:       v.Get(ParamTo),
	}
}

// Normalize trims every field.
func (f Filter) Normalize() Filter {
	return Filter{
		Category: strings.TrimSpace(f.Category),
		Search:   strings.TrimSpace(f.Search),
		From:     strings.TrimSpace(f.From),
		To:       strings.TrimSpace(f.To),
	}
}

// IsZero reports whether no field has a value after trimming.
func (f Filter) IsZero() bool {
	return f.Normalize() == Filter{}
}

// Query encodes the non-empty fields in the order category, q, from, to.
// Empty fields are left out rather than sent as empty strings. Date order
// is not checked; the server interprets the values.
func (f Filter) Query() string {
	f = f.Normalize()
	var b strings.Builder
	add := func(key, value string) {
		if value == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}
	add(ParamCategory, f.Category)
	add(ParamSearch, f.Search)
	add(ParamFrom, f.From)
	add(ParamTo, f.To)
	return b.String()
}

// WithPeriod sets From and To to the week, month or year containing t.
// Unknown periods return the filter unchanged.
func (f Filter) WithPeriod(period string, t time.Time) Filter {
	n := now.With(t)
	var from, to time.Time
	switch period {
	case PeriodWeek:
		from, to = n.BeginningOfWeek(), n.EndOfWeek()
	case PeriodMonth:
		from, to = n.BeginningOfMonth(), n.EndOfMonth()
	case PeriodYear:
		from, to = n.BeginningOfYear(), n.EndOfYear()
	default:
		return f
	}
	f.From = from.Format(dateLayout)
	f.To = to.Format(dateLayout)
	return f
}

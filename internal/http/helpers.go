package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"expensedesk/internal/core"
)

// Form field names. Filter inputs carry a prefix so they can travel with
// the create and edit forms without clashing with their fields.
const (
	fieldID        = "id"
	fieldCategory  = "category"
	fieldAmount    = "amount"
	fieldDate      = "date"
	fieldNote      = "note"
	fieldConfirmed = "confirmed"
	filterPrefix   = "filter-"
	fieldPeriod    = filterPrefix + "period"
)

var timeNow = time.Now

// sanitizeInput removes control characters except tab, newline and
// carriage return. Trimming is left to core.Draft.Normalize.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// draftFromForm reads the expense fields of a submitted form.
func draftFromForm(form url.Values) core.Draft {
	return core.Draft{
		Category: sanitizeInput(form.Get(fieldCategory)),
		Amount:   sanitizeInput(form.Get(fieldAmount)),
		Date:     sanitizeInput(form.Get(fieldDate)),
		Note:     sanitizeInput(form.Get(fieldNote)),
	}
}

// filterFromRequest reads the filter bar values sent along with r. A
// plain GET may also use the bare API names (?category=Food). A period
// shortcut replaces the dates; period reports whether one was applied.
func filterFromRequest(r *http.Request) (f core.Filter, period bool) {
	v := url.Values{}
	query := r.URL.Query()
	for _, name := range []string{core.ParamCategory, core.ParamSearch, core.ParamFrom, core.ParamTo} {
		if vals, ok := r.Form[filterPrefix+name]; ok {
			v[name] = vals
		} else if r.Method == http.MethodGet {
			if vals, ok := query[name]; ok {
				v[name] = vals
			}
		}
	}
	f = core.FilterFromValues(v)
	if p := strings.TrimSpace(r.Form.Get(fieldPeriod)); p != "" {
		withPeriod := f.WithPeriod(p, timeNow())
		period = withPeriod != f
		f = withPeriod
	}
	return f, period
}

func isConfirmed(form url.Values) bool {
	return strings.EqualFold(strings.TrimSpace(form.Get(fieldConfirmed)), "true")
}

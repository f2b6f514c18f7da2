package core

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestFilterQueryAllCombinations(t *testing.T) {
	values := [4]string{"Food & Drink", "lunch", "2024-01-01", "2024-01-31"}
	names := [4]string{ParamCategory, ParamSearch, ParamFrom, ParamTo}

	for mask := 0; mask < 16; mask++ {
		var fields [4]string
		var wantKeys []string
		for i := range fields {
			if mask&(1<<i) != 0 {
				fields[i] = "  " + values[i] + " "
				wantKeys = append(wantKeys, names[i])
			} else {
				fields[i] = "   "
			}
		}
		f := Filter{Category: fields[0], Search: fields[1], From: fields[2], To: fields[3]}
		q := f.Query()

		var gotKeys []string
		if q != "" {
			for _, part := range strings.Split(q, "&") {
				gotKeys = append(gotKeys, strings.SplitN(part, "=", 2)[0])
			}
		}
		if strings.Join(gotKeys, ",") != strings.Join(wantKeys, ",") {
			t.Fatalf("mask %04b: keys %v, want %v (query %q)", mask, gotKeys, wantKeys, q)
		}

		parsed, err := url.ParseQuery(q)
		if err != nil {
			t.Fatalf("mask %04b: parse %q: %v", mask, q, err)
		}
		for i, name := range names {
			if mask&(1<<i) != 0 && parsed.Get(name) != values[i] {
				t.Fatalf("mask %04b: %s=%q, want %q", mask, name, parsed.Get(name), values[i])
			}
		}
	}
}

func TestFilterQueryEncoding(t *testing.T) {
	got := Filter{Category: "Food", Search: "fish & chips"}.Query()
	want := "category=Food&q=fish+%26+chips"
	if got != want {
		t.Fatalf("Query() = %q, want %q", got, want)
	}
	if (Filter{}).Query() != "" {
		t.Fatalf("empty filter should encode to an empty string")
	}
}

func TestFilterFromValues(t *testing.T) {
	v := url.Values{}
	v.Set("category", "Food")
	v.Set("q", "x")
	v.Set("from", "2024-01-01")
	v.Set("unrelated", "y")
	f := FilterFromValues(v)
	if f != (Filter{Category: "Food", Search: "x", From: "2024-01-01"}) {
		t.Fatalf("unexpected filter: %+v", f)
	}
	if f.IsZero() || !(Filter{Search: "  "}).IsZero() {
		t.Fatalf("IsZero mismatch")
	}
}

func TestFilterWithPeriod(t *testing.T) {
	ref := time.Date(2024, 2, 14, 15, 30, 0, 0, time.UTC) // a Wednesday
	cases := []struct {
		period   string
		from, to string
	}{
		{PeriodWeek, "2024-02-11", "2024-02-17"},
		{PeriodMonth, "2024-02-01", "2024-02-29"},
		{PeriodYear, "2024-01-01", "2024-12-31"},
	}
	for _, tc := range cases {
		f := Filter{Category: "Food"}.WithPeriod(tc.period, ref)
		if f.From != tc.from || f.To != tc.to || f.Category != "Food" {
			t.Fatalf("%s: got %+v", tc.period, f)
		}
	}

	orig := Filter{From: "2020-01-01"}
	if got := orig.WithPeriod("decade", ref); got != orig {
		t.Fatalf("unknown period changed the filter: %+v", got)
	}
}

package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Row is the display form of one expense in the table.
type Row struct {
	Index    int // 1-based position in the rendered list, not the id
	ID       string
	Date     string
	Category string
	Amount   string
	Note     string
}

// BuildRows maps expenses to rows in the order given.
func BuildRows(items []Expense) []Row {
	rows := make([]Row, 0, len(items))
	for i, e := range items {
		rows = append(rows, Row{
			Index:    i + 1,
			ID:       e.IDString(),
			Date:     e.Date,
			Category: e.Category,
			Amount:   e.Amount.Fixed2(),
			Note:     e.Note,
		})
	}
	return rows
}

// Sum adds up the coerced amounts of items.
func Sum(items []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range items {
		total = total.Add(e.Amount.Decimal())
	}
	return total
}

// Total is Sum formatted with two decimal places.
func Total(items []Expense) string {
	return Sum(items).StringFixed(2)
}

// Summary is the aggregate returned by the summary endpoint.
type Summary struct {
	Total      Amount            `json:"total"`
	ByCategory map[string]Amount `json:"byCategory"`
}

// CategoryBar is one category line of the summary panel.
type CategoryBar struct {
	Name   string
	Amount string
	Width  int // percent of the largest category
}

// Bars returns the categories largest first, each scaled against the
// largest one. Non-zero categories get at least 2% so they stay visible.
func (s Summary) Bars() []CategoryBar {
	type entry struct {
		name  string
		value decimal.Decimal
	}
	entries := make([]entry, 0, len(s.ByCategory))
	maxValue := decimal.Zero
	for name, amt := range s.ByCategory {
		d := amt.Decimal()
		entries = append(entries, entry{name: name, value: d})
		if d.GreaterThan(maxValue) {
			maxValue = d
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if c := entries[i].value.Cmp(entries[j].value); c != 0 {
			return c > 0
		}
		return entries[i].name < entries[j].name
	})

	hundred := decimal.NewFromInt(100)
	bars := make([]CategoryBar, 0, len(entries))
	for _, e := range entries {
		width := 0
		if maxValue.IsPositive() && e.value.IsPositive() {
			width = int(e.value.Mul(hundred).DivRound(maxValue, 0).IntPart())
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		bars = append(bars, CategoryBar{Name: e.name, Amount: e.value.StringFixed(2), Width: width})
	}
	return bars
}

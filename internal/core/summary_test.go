package core

import (
	"encoding/json"
	"testing"
)

func TestBuildRowsAndTotal(t *testing.T) {
	var items []Expense
	body := `[
		{"id": 30, "category": "Food", "amount": 12.5, "date": "2024-01-03", "note": "lunch"},
		{"id": 12, "category": "Taxi", "amount": "3", "date": "2024-01-02"},
		{"id": 5, "category": "Gift", "amount": "n/a", "date": "2024-01-01"},
		{"id": 4, "category": "Misc", "amount": null, "date": "2024-01-01"},
		{"id": 3, "category": "Misc", "date": "2024-01-01"}
	]`
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rows := BuildRows(items)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	first := rows[0]
	if first.Index != 1 || first.ID != "30" || first.Amount != "12.50" || first.Note != "lunch" || first.Date != "2024-01-03" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if rows[1].Index != 2 || rows[1].ID != "12" || rows[1].Note != "" {
		t.Fatalf("rows must keep server order with 1-based index: %+v", rows[1])
	}
	if rows[2].Amount != "0.00" {
		t.Fatalf("non-numeric amount should render as 0.00, got %s", rows[2].Amount)
	}

	if got := Total(items); got != "15.50" {
		t.Fatalf("Total() = %s, want 15.50", got)
	}
	if got := Total(nil); got != "0.00" {
		t.Fatalf("Total(nil) = %s, want 0.00", got)
	}
}

func TestTotalNoFloatDrift(t *testing.T) {
	items := []Expense{
		{Amount: NewAmount("0.1")},
		{Amount: NewAmount("0.2")},
		{Amount: NewAmount("0.005")},
	}
	if got := Total(items); got != "0.31" {
		t.Fatalf("Total() = %s, want 0.31", got)
	}
}

func TestSummaryBars(t *testing.T) {
	var s Summary
	body := `{"total": 110.5, "byCategory": {"Food": 100, "Taxi": 10.5, "Gift": 0.5, "Zero": 0}}`
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Total.Fixed2() != "110.50" {
		t.Fatalf("unexpected total %s", s.Total.Fixed2())
	}

	bars := s.Bars()
	if len(bars) != 4 {
		t.Fatalf("expected 4 bars, got %d", len(bars))
	}
	want := []CategoryBar{
		{Name: "Food", Amount: "100.00", Width: 100},
		{Name: "Taxi", Amount: "10.50", Width: 11},
		{Name: "Gift", Amount: "0.50", Width: 2},
		{Name: "Zero", Amount: "0.00", Width: 0},
	}
	for i := range want {
		if bars[i] != want[i] {
			t.Fatalf("bar %d = %+v, want %+v", i, bars[i], want[i])
		}
	}
}

func TestSummaryBarsLargeTotals(t *testing.T) {
	s := Summary{ByCategory: map[string]Amount{
		"Fleet":  NewAmount("92233720368547758.07"),
		"Office": NewAmount("46116860184273879.04"),
		"Snacks": NewAmount("1.00"),
	}}

	bars := s.Bars()
	want := []CategoryBar{
		{Name: "Fleet", Amount: "92233720368547758.07", Width: 100},
		{Name: "Office", Amount: "46116860184273879.04", Width: 50},
		{Name: "Snacks", Amount: "1.00", Width: 2},
	}
	if len(bars) != len(want) {
		t.Fatalf("expected %d bars, got %d", len(want), len(bars))
	}
	for i := range want {
		if bars[i] != want[i] {
			t.Fatalf("bar %d = %+v, want %+v", i, bars[i], want[i])
		}
	}
}

package core

import (
	"strconv"
	"strings"
)

type (
	// Expense is a record as returned by the remote API.
	Expense struct {
		ID       int64  `json:"id"`
		Category string `json:"category"`
		Amount   Amount `json:"amount"`
		Date     string `json:"date"`
		Note     string `json:"note,omitempty"`
	}

	// Draft is the payload sent on create and update. The remote API
	// assigns the id, so a Draft never carries one.
	Draft struct {
		Category string `json:"category"`
		Amount   string `json:"amount"`
		Date     string `json:"date"`
		Note     string `json:"note"`
	}
)

// IDString returns the id as it appears in URLs and form fields.
func (e Expense) IDString() string {
	return strconv.FormatInt(e.ID, 10)
}

// Draft returns the editable fields of the expense, as loaded into the
// edit dialog. An absent note becomes an empty string.
func (e Expense) Draft() Draft {
	return Draft{
		Category: e.Category,
		Amount:   e.Amount.String(),
		Date:     e.Date,
		Note:     e.Note,
	}
}

// Normalize trims category and note. Amount and date are sent exactly
// as entered; the server decides whether they are valid.
func (d Draft) Normalize() Draft {
	d.Category = strings.TrimSpace(d.Category)
	d.Note = strings.TrimSpace(d.Note)
	return d
}

// FindByID returns the expense with the given id, if present.
func FindByID(items []Expense, id string) (Expense, bool) {
	id = strings.TrimSpace(id)
	for _, e := range items {
		if e.IDString() == id {
			return e, true
		}
	}
	return Expense{}, false
}

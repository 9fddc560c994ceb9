package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"logichain-web/internal/models"
)

// Table is the generic list view: one template renders every listing.
type Table struct {
	Title   string
	Columns []string
	Rows    []Row
	Empty   string
}

type Row struct {
	Cells   []string
	Link    string
	Actions []Action
}

// Action is a POST button on a row.
type Action struct {
	Label   string
	Path    string
	Confirm string
}

// HasExtras tells the template to reserve a column for links and buttons.
func (t Table) HasExtras() bool {
	for _, r := range t.Rows {
		if r.Link != "" || len(r.Actions) > 0 {
			return true
		}
	}
	return false
}

func newTable(title, empty string, columns ...string) Table {
	return Table{Title: title, Columns: columns, Empty: empty}
}

func (t *Table) add(link string, cells ...string) *Row {
	t.Rows = append(t.Rows, Row{Cells: cells, Link: link})
	return &t.Rows[len(t.Rows)-1]
}

func money(v float64) string { return fmt.Sprintf("$%.2f", v) }

func num[T ~int | ~int64](v T) string { return strconv.FormatInt(int64(v), 10) }

// orDash renders blanks as a dash.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// day trims an ISO timestamp to its date.
func day(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return orDash(ts)
}

// pathID reads a numeric path parameter. ok is false for anything else.
func pathID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// contactCells renders a user's email and phone for a table row. Unless
// reveal is set, only the first two characters of the mailbox and the last
// two digits of the phone survive.
func contactCells(u models.User, reveal bool) (email, phone string) {
	if reveal {
		return u.Email, orDash(u.Phone)
	}
	return maskEmail(u.Email), maskPhone(u.Phone)
}

func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	if r := []rune(local); len(r) > 2 {
		local = string(r[:2])
	}
	return local + "***@" + domain
}

func maskPhone(phone string) string {
	r := []rune(phone)
	switch {
	case len(r) == 0:
		return "-"
	case len(r) <= 4:
		return "***"
	}
	return strings.Repeat("*", len(r)-2) + string(r[len(r)-2:])
}

package repository

import "time"

type TicketFilter struct {
	Q             string // serial number or title substring, case-insensitive
	CreatedByID   string
	AssigneeID    string
	ExcludeClosed bool
	From          time.Time // createdAt >= From when set
	To            time.Time // createdAt <= To when set
	OldestFirst   bool      // default newest-first
}

type InvoiceFilter struct {
	Q    string // ticket serial number substring, case-insensitive
	From time.Time
	To   time.Time
}

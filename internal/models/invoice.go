package models

import "time"

// Invoice is the billing record generated once per closed, assigned ticket.
// TicketSerialNumber and TechnicianName are denormalized copies taken at
// validation time.
type Invoice struct {
	ID                 string    `json:"id"`
	TicketID           string    `json:"ticketId"`
	TicketSerialNumber string    `json:"ticketSerialNumber"`
	TechnicianName     string    `json:"technicianName"`
	Date               time.Time `json:"date"`
	Amount             float64   `json:"amount"`
}

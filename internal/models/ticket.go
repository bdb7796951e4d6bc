package models

import "time"

const (
	StatusCreated    = "created"
	StatusInProgress = "in_progress"
	StatusClosed     = "closed" // terminal
)

type Ticket struct {
	ID           string        `json:"id"`
	SerialNumber string        `json:"serialNumber"`
	Title        string        `json:"title"`
	Application  string        `json:"application"`
	Location     string        `json:"location,omitempty"`
	Description  string        `json:"description"`
	Attachments  []string      `json:"attachments,omitempty"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	CreatedBy    UserSnapshot  `json:"createdBy"`
	AssignedTo   *UserSnapshot `json:"assignedTo,omitempty"`
}

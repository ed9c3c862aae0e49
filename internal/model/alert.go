package model

import (
	"time"
)

const (
	AlertTitle = "Medicine Time"
)

// Alert is a single user-visible reminder notification.
// SlotID identifies its place in the tray; alerts with different slots never replace each other.
type Alert struct {
	SlotID       int       `json:"slot_id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	MedicineName string    `json:"medicine_name"`
	FiredAt      time.Time `json:"fired_at"`
}

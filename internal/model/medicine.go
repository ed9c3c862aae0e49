package model

import (
	"time"
)

type Medicine struct {
	ID        string    `db:"id" json:"id"`
	Position  int       `db:"seq" json:"position"`
	Name      string    `db:"name" json:"name"`
	Time      string    `db:"remind_time" json:"time"` // "HH:mm" as entered, may not parse
	Taken     bool      `db:"taken" json:"taken"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

package models

import "time"

// Base contains common columns for all tables. Deletes are hard deletes:
// budgets carry a composite unique index over their period, and a
// soft-deleted row would keep blocking re-creation of the same period.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// Block is one slot of a weekly availability template.
type Block struct {
	ID         string       `json:"id"`
	DayOfWeek  time.Weekday `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime  string       `json:"start_time"`  // HH:MM format
	EndTime    string       `json:"end_time"`    // HH:MM format
	BlockIndex int          `json:"block_index"`
}

// BlockSet is a named collection of Blocks. Only one set is active at a time.
type BlockSet struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Active bool    `json:"active"`
	Blocks []Block `json:"blocks"`
}

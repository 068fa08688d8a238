package entity

import "time"

// BatchProgress is a snapshot of a running batch check
type BatchProgress struct {
	Total     int
	Done      int
	Succeeded int
	Failed    int
	StartTime time.Time
}

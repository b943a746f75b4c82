package domain

import (
	"fmt"
	"time"
)

// TimeLayout is the second-resolution layout used both in formatted output
// and in persisted snapshots.
const TimeLayout = "2006-01-02 15:04:05"

type Listing struct {
	ID          int
	Title       string
	Description string
	Price       float64
	Category    string
	Owner       string // creator's name as originally supplied
	CreatedAt   time.Time
}

// Format renders the pipe-delimited listing line. Price is shown rounded to
// whole units; Owner keeps its original casing.
func (l *Listing) Format() string {
	return fmt.Sprintf("%s|%s|%.0f|%s|%s|%s",
		l.Title, l.Description, l.Price,
		l.CreatedAt.Format(TimeLayout), l.Category, l.Owner)
}

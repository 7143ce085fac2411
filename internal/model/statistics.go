package model

import "time"

// ActivityEntry is one row of the recent-activity log.
type ActivityEntry struct {
	FileName string
	Category string
	Action   string
	Date     time.Time
}

// Statistics aggregates the current state of the vault for the stats view.
type Statistics struct {
	TotalFiles      int
	ByCategory      map[PARACategory]int
	RecentActivity  []ActivityEntry
	APICost         float64
	DuplicatesFound int
}

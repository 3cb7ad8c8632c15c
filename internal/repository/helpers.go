package repository

import (
	"time"
)

// timeLayout is the format for timestamps stored in SQLite
const timeLayout = time.RFC3339Nano

// formatTime returns the current UTC time in timeLayout
func formatTime() string {
	return time.Now().UTC().Format(timeLayout)
}

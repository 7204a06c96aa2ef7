package tz

import (
	"log"
	"time"
)

// Load returns the named location (e.g. "Europe/Madrid"). An empty or
// unknown name falls back to UTC so displayed times never block start-up.
func Load(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("⚠️ tz: load %s: %v, using UTC", name, err)
		return time.UTC
	}
	return loc
}

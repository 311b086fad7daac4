package session

import "time"

// Clock exists so the deletion-guard window can be driven by a fake in
// tests instead of wall-clock sleeps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

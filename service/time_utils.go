package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrDailyCooldown    = errors.New("daily reward already claimed")
	ErrWorkCooldown     = errors.New("you are still tired from working")
	ErrRakebackCooldown = errors.New("rakeback was claimed too recently")
)

// CooldownError reports when a rate-limited action becomes available again
type CooldownError struct {
	Err           error
	NextAvailable time.Time
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%v, available again at %s", e.Err, e.NextAvailable.UTC().Format(time.RFC3339))
}

func (e *CooldownError) Unwrap() error {
	return e.Err
}

// checkCooldown returns a CooldownError wrapping err while now is inside the
// cooldown window that started at last. A nil last never blocks.
func checkCooldown(last *time.Time, cooldown time.Duration, now time.Time, err error) error {
	if last == nil {
		return nil
	}
	next := last.Add(cooldown)
	if now.Before(next) {
		return &CooldownError{Err: err, NextAvailable: next}
	}
	return nil
}

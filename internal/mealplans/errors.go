package mealplans

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrNoActivePlan   = errors.New("no active meal plan")
	ErrNoFoods        = errors.New("no foods selected")
	ErrInvalidRequest = errors.New("invalid request")
	ErrPlanLocked     = errors.New("meal plan is locked")
)

// LockedError carries the time the active plan unlocks.
type LockedError struct {
	Until time.Time
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s until %s", ErrPlanLocked, e.Until.UTC().Format(time.RFC3339))
}

func (e *LockedError) Is(target error) bool {
	return target == ErrPlanLocked
}

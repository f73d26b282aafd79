package mealgen

import "errors"

var (
	// ErrInsufficientIngredients means no selected food is allowed in the slot.
	ErrInsufficientIngredients = errors.New("insufficient ingredients for meal slot")
	// ErrUnbalancedSelection means candidates exist but no protein source among them.
	ErrUnbalancedSelection = errors.New("no balanced ingredient set for meal slot")
	// ErrNoPopulatableSlots is returned before generation when every meal would be a placeholder.
	ErrNoPopulatableSlots = errors.New("selected foods cannot populate any meal slot")
	ErrInvalidTargets     = errors.New("calorie target must be positive")
)

package mealgen

import "github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"

// Role is the dominant macronutrient an ingredient contributes.
type Role string

const (
	RoleProtein   Role = "protein"
	RoleCarb      Role = "carb"
	RoleFat       Role = "fat"
	RoleSecondary Role = "secondary"
)

// Energy-share thresholds, checked in this order.
const (
	proteinEnergyShare = 0.40
	carbEnergyShare    = 0.50
	fatEnergyShare     = 0.50
)

// ClassifyRole derives an ingredient's role from its energy split.
func ClassifyRole(m catalog.Macros) Role {
	if m.Calories <= 0 {
		return RoleSecondary
	}
	proteinCal := m.Protein * 4
	carbCal := m.Carbs * 4
	fatCal := m.Fat * 9

	switch {
	case proteinCal/m.Calories >= proteinEnergyShare:
		return RoleProtein
	case carbCal/m.Calories >= carbEnergyShare:
		return RoleCarb
	case fatCal/m.Calories >= fatEnergyShare:
		return RoleFat
	default:
		return RoleSecondary
	}
}

// roleForMacro maps an adjustable macro to the role that supplies it.
func roleForMacro(k Macro) (Role, bool) {
	switch k {
	case MacroProtein:
		return RoleProtein, true
	case MacroCarbs:
		return RoleCarb, true
	case MacroFat:
		return RoleFat, true
	}
	return "", false
}

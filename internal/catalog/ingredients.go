package catalog

var (
	mainMeals   = []MealSlot{SlotLunch, SlotDinner}
	morning     = []MealSlot{SlotBreakfast, SlotSnack}
	exceptSnack = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner}
	anyMeal     = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}
)

// referenceIngredients is the built-in catalog. Values are per 100 g, cooked
// weight for grains and legumes unless the name says otherwise.
var referenceIngredients = []Ingredient{
	// protein
	{ID: "chicken-breast", Name: "Chicken Breast", Category: CategoryProtein, Per100g: Macros{Protein: 31, Carbs: 0, Fat: 3.6, Calories: 165}, Slots: mainMeals, ServingGrams: 150, Tags: []string{"poultry", "lean"}},
	{ID: "turkey-breast", Name: "Turkey Breast", Category: CategoryProtein, Per100g: Macros{Protein: 29, Carbs: 0, Fat: 1, Calories: 135}, Slots: mainMeals, ServingGrams: 150, Tags: []string{"poultry", "lean"}},
	{ID: "lean-beef", Name: "Lean Beef (5% fat)", Category: CategoryProtein, Per100g: Macros{Protein: 21, Carbs: 0, Fat: 5, Calories: 137}, Slots: mainMeals, ServingGrams: 150, Tags: []string{"red-meat"}},
	{ID: "salmon", Name: "Salmon", Category: CategoryProtein, Per100g: Macros{Protein: 20, Carbs: 0, Fat: 13, Calories: 208}, Slots: mainMeals, ServingGrams: 140, Tags: []string{"fish", "omega-3"}},
	{ID: "tuna-canned", Name: "Tuna (canned in water)", Category: CategoryProtein, Per100g: Macros{Protein: 26, Carbs: 0, Fat: 1, Calories: 116}, Slots: mainMeals, ServingGrams: 120, Tags: []string{"fish", "lean"}},
	{ID: "cod", Name: "Cod", Category: CategoryProtein, Per100g: Macros{Protein: 23, Carbs: 0, Fat: 0.9, Calories: 105}, Slots: mainMeals, ServingGrams: 160, Tags: []string{"fish", "lean"}},
	{ID: "tofu", Name: "Firm Tofu", Category: CategoryProtein, Per100g: Macros{Protein: 8, Carbs: 1.9, Fat: 4.8, Calories: 76}, Slots: mainMeals, ServingGrams: 200, Tags: []string{"vegan"}},
	{ID: "eggs", Name: "Whole Eggs", Category: CategoryProtein, Per100g: Macros{Protein: 13, Carbs: 1.1, Fat: 11, Calories: 155}, Slots: exceptSnack, ServingGrams: 100, Tags: []string{"vegetarian"}},
	{ID: "egg-whites", Name: "Egg Whites", Category: CategoryProtein, Per100g: Macros{Protein: 11, Carbs: 0.7, Fat: 0.2, Calories: 52}, Slots: []MealSlot{SlotBreakfast}, ServingGrams: 150, Tags: []string{"vegetarian", "lean"}},
	{ID: "whey-protein", Name: "Whey Protein Powder", Category: CategoryProtein, Per100g: Macros{Protein: 80, Carbs: 8, Fat: 6, Calories: 400}, Slots: morning, ServingGrams: 30, Tags: []string{"supplement"}},

	// dairy
	{ID: "greek-yogurt", Name: "Greek Yogurt (0%)", Category: CategoryDairy, Per100g: Macros{Protein: 10, Carbs: 3.6, Fat: 0.4, Calories: 59}, Slots: morning, ServingGrams: 170, Tags: []string{"vegetarian"}},
	{ID: "cottage-cheese", Name: "Cottage Cheese", Category: CategoryDairy, Per100g: Macros{Protein: 11, Carbs: 3.4, Fat: 4.3, Calories: 98}, Slots: morning, ServingGrams: 150, Tags: []string{"vegetarian"}},
	{ID: "skim-milk", Name: "Skim Milk", Category: CategoryDairy, Per100g: Macros{Protein: 3.4, Carbs: 5, Fat: 0.1, Calories: 34}, Slots: morning, ServingGrams: 250, Tags: []string{"vegetarian"}},

	// carb
	{ID: "brown-rice", Name: "Brown Rice", Category: CategoryCarb, Per100g: Macros{Protein: 2.6, Carbs: 23, Fat: 0.9, Calories: 112, Fiber: 1.8}, Slots: mainMeals, ServingGrams: 150, Tags: []string{"grain", "vegan"}},
	{ID: "white-rice", Name: "White Rice", Category: CategoryCarb, Per100g: Macros{Protein: 2.7, Carbs: 28, Fat: 0.3, Calories: 130, Fiber: 0.4}, Slots: mainMeals, ServingGrams: 150, Tags: []string{"grain", "vegan"}},
	{ID: "quinoa", Name: "Quinoa", Category: CategoryCarb, Per100g: Macros{Protein: 4.4, Carbs: 21, Fat: 1.9, Calories: 120, Fiber: 2.8}, Slots: mainMeals, ServingGrams: 150, Tags: []string{"grain", "vegan"}},
	{ID: "sweet-potato", Name: "Sweet Potato", Category: CategoryCarb, Per100g: Macros{Protein: 1.6, Carbs: 20, Fat: 0.1, Calories: 86, Fiber: 3}, Slots: mainMeals, ServingGrams: 200, Tags: []string{"tuber", "vegan"}},
	{ID: "whole-wheat-pasta", Name: "Whole Wheat Pasta", Category: CategoryCarb, Per100g: Macros{Protein: 5.3, Carbs: 27, Fat: 0.5, Calories: 124, Fiber: 3.9}, Slots: mainMeals, ServingGrams: 180, Tags: []string{"grain"}},
	{ID: "oats", Name: "Rolled Oats (dry)", Category: CategoryCarb, Per100g: Macros{Protein: 13, Carbs: 66, Fat: 7, Calories: 389, Fiber: 10}, Slots: []MealSlot{SlotBreakfast}, ServingGrams: 60, Tags: []string{"grain", "vegan"}},
	{ID: "whole-wheat-bread", Name: "Whole Wheat Bread", Category: CategoryCarb, Per100g: Macros{Protein: 13, Carbs: 41, Fat: 3.4, Calories: 247, Fiber: 7}, Slots: []MealSlot{SlotBreakfast, SlotLunch, SlotSnack}, ServingGrams: 60, Tags: []string{"grain"}},
	{ID: "rice-cakes", Name: "Rice Cakes", Category: CategoryCarb, Per100g: Macros{Protein: 8, Carbs: 82, Fat: 3, Calories: 387, Fiber: 4}, Slots: morning, ServingGrams: 20, Tags: []string{"grain", "vegan"}},

	// vegetable
	{ID: "broccoli", Name: "Broccoli", Category: CategoryVegetable, Per100g: Macros{Protein: 2.8, Carbs: 7, Fat: 0.4, Calories: 34, Fiber: 2.6}, Slots: mainMeals, ServingGrams: 100, Tags: []string{"vegan"}},
	{ID: "spinach", Name: "Spinach", Category: CategoryVegetable, Per100g: Macros{Protein: 2.9, Carbs: 3.6, Fat: 0.4, Calories: 23, Fiber: 2.2}, Slots: exceptSnack, ServingGrams: 60, Tags: []string{"vegan", "leafy"}},
	{ID: "bell-pepper", Name: "Bell Pepper", Category: CategoryVegetable, Per100g: Macros{Protein: 1, Carbs: 6, Fat: 0.3, Calories: 31, Fiber: 2.1}, Slots: mainMeals, ServingGrams: 100, Tags: []string{"vegan"}},
	{ID: "zucchini", Name: "Zucchini", Category: CategoryVegetable, Per100g: Macros{Protein: 1.2, Carbs: 3.1, Fat: 0.3, Calories: 17, Fiber: 1}, Slots: mainMeals, ServingGrams: 120, Tags: []string{"vegan"}},
	{ID: "green-beans", Name: "Green Beans", Category: CategoryVegetable, Per100g: Macros{Protein: 1.8, Carbs: 7, Fat: 0.2, Calories: 31, Fiber: 2.7}, Slots: mainMeals, ServingGrams: 100, Tags: []string{"vegan"}},
	{ID: "carrots", Name: "Carrots", Category: CategoryVegetable, Per100g: Macros{Protein: 0.9, Carbs: 10, Fat: 0.2, Calories: 41, Fiber: 2.8}, Slots: anyMeal, ServingGrams: 80, Tags: []string{"vegan"}},

	// fruit
	{ID: "banana", Name: "Banana", Category: CategoryFruit, Per100g: Macros{Protein: 1.1, Carbs: 23, Fat: 0.3, Calories: 89, Fiber: 2.6}, Slots: morning, ServingGrams: 120, Tags: []string{"vegan"}},
	{ID: "apple", Name: "Apple", Category: CategoryFruit, Per100g: Macros{Protein: 0.3, Carbs: 14, Fat: 0.2, Calories: 52, Fiber: 2.4}, Slots: morning, ServingGrams: 150, Tags: []string{"vegan"}},
	{ID: "blueberries", Name: "Blueberries", Category: CategoryFruit, Per100g: Macros{Protein: 0.7, Carbs: 14, Fat: 0.3, Calories: 57, Fiber: 2.4}, Slots: morning, ServingGrams: 100, Tags: []string{"vegan", "berries"}},
	{ID: "strawberries", Name: "Strawberries", Category: CategoryFruit, Per100g: Macros{Protein: 0.7, Carbs: 7.7, Fat: 0.3, Calories: 32, Fiber: 2}, Slots: morning, ServingGrams: 150, Tags: []string{"vegan", "berries"}},

	// fat
	{ID: "olive-oil", Name: "Olive Oil", Category: CategoryFat, Per100g: Macros{Protein: 0, Carbs: 0, Fat: 100, Calories: 884}, Slots: mainMeals, ServingGrams: 10, Tags: []string{"vegan", "oil"}},
	{ID: "avocado", Name: "Avocado", Category: CategoryFat, Per100g: Macros{Protein: 2, Carbs: 8.5, Fat: 15, Calories: 160, Fiber: 6.7}, Slots: exceptSnack, ServingGrams: 70, Tags: []string{"vegan"}},
	{ID: "almonds", Name: "Almonds", Category: CategoryFat, Per100g: Macros{Protein: 21, Carbs: 22, Fat: 49, Calories: 579, Fiber: 12.5}, Slots: morning, ServingGrams: 25, Tags: []string{"vegan", "nuts"}},
	{ID: "peanut-butter", Name: "Peanut Butter", Category: CategoryFat, Per100g: Macros{Protein: 25, Carbs: 20, Fat: 50, Calories: 588, Fiber: 6}, Slots: morning, ServingGrams: 20, Tags: []string{"vegan", "nuts"}},

	// misc
	{ID: "garlic", Name: "Garlic", Category: CategoryMisc, Per100g: Macros{Protein: 6.4, Carbs: 33, Fat: 0.5, Calories: 149, Fiber: 2.1}, Slots: mainMeals, ServingGrams: 10, Tags: []string{"seasoning"}},
	{ID: "lemon-juice", Name: "Lemon Juice", Category: CategoryMisc, Per100g: Macros{Protein: 0.4, Carbs: 7, Fat: 0.2, Calories: 22}, Slots: mainMeals, ServingGrams: 15, Tags: []string{"seasoning"}},
	{ID: "soy-sauce", Name: "Soy Sauce", Category: CategoryMisc, Per100g: Macros{Protein: 8, Carbs: 5, Fat: 0.6, Calories: 53}, Slots: mainMeals, ServingGrams: 15, Tags: []string{"seasoning", "condiment"}},
}

var defaultCatalog = MustNew(referenceIngredients)

// Default returns the built-in reference catalog.
func Default() *Catalog {
	return defaultCatalog
}

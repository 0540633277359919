package food

// DefaultEntries returns the built-in catalog of common Indian foods.
func DefaultEntries() []Entry {
	return []Entry{
		// Vegetables
		{Name: "carrot", Calories: 41, Protein: 0.9, Carbs: 10, Fat: 0.2, Fiber: 2.8, Category: CategoryVegetable, HealthBenefits: []string{"eye health", "immunity"}},
		{Name: "potato", Calories: 77, Protein: 2, Carbs: 17, Fat: 0.1, Fiber: 2.2, Category: CategoryStarchyVegetable, HealthBenefits: []string{"energy"}},
		{Name: "spinach", Calories: 23, Protein: 2.9, Carbs: 3.6, Fat: 0.4, Fiber: 2.2, Category: CategoryLeafyGreen, HealthBenefits: []string{"iron", "immunity"}},
		{Name: "tomato", Calories: 18, Protein: 0.9, Carbs: 3.9, Fat: 0.2, Fiber: 1.2, Category: CategoryVegetable, HealthBenefits: []string{"heart health", "antioxidants"}},
		{Name: "broccoli", Calories: 34, Protein: 2.8, Carbs: 7, Fat: 0.4, Fiber: 2.6, Category: CategoryVegetable, HealthBenefits: []string{"immunity", "bone health"}},
		{Name: "cauliflower", Calories: 25, Protein: 1.9, Carbs: 5, Fat: 0.3, Fiber: 2, Category: CategoryVegetable, HealthBenefits: []string{"digestion"}},
		// Fruits
		{Name: "apple", Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2, Fiber: 2.4, Sugar: grams(10.4), Category: CategoryFruit, HealthBenefits: []string{"heart health", "weight management"}},
		{Name: "banana", Calories: 89, Protein: 1.1, Carbs: 23, Fat: 0.3, Fiber: 2.6, Sugar: grams(12), Category: CategoryFruit, HealthBenefits: []string{"energy", "potassium"}},
		{Name: "mango", Calories: 60, Protein: 0.8, Carbs: 15, Fat: 0.4, Fiber: 1.6, Sugar: grams(13.7), Category: CategoryFruit, HealthBenefits: []string{"vitamin C", "immunity"}},
		{Name: "orange", Calories: 47, Protein: 0.9, Carbs: 12, Fat: 0.1, Fiber: 2.4, Sugar: grams(9), Category: CategoryFruit, HealthBenefits: []string{"vitamin C", "immunity"}},
		// Grains and staples
		{Name: "rice", Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3, Fiber: 0.4, Category: CategoryGrain, HealthBenefits: []string{"energy"}},
		{Name: "brown rice", Calories: 111, Protein: 2.6, Carbs: 23, Fat: 0.9, Fiber: 1.8, Category: CategoryWholeGrain, HealthBenefits: []string{"energy", "fiber"}},
		{Name: "roti", Calories: 71, Protein: 3, Carbs: 15, Fat: 0.4, Fiber: 2, Category: CategoryGrain, HealthBenefits: []string{"energy", "fiber"}},
		{Name: "chapati", Calories: 71, Protein: 3, Carbs: 15, Fat: 0.4, Fiber: 2, Category: CategoryGrain, HealthBenefits: []string{"energy", "fiber"}},
		{Name: "bread", Calories: 265, Protein: 9, Carbs: 49, Fat: 3.2, Fiber: 2.7, Category: CategoryGrain, HealthBenefits: []string{"energy"}},
		{Name: "oats", Calories: 389, Protein: 16.9, Carbs: 66, Fat: 6.9, Fiber: 10.6, Category: CategoryWholeGrain, HealthBenefits: []string{"heart health", "cholesterol"}},
		// Proteins
		{Name: "chicken", Calories: 239, Protein: 27, Carbs: 0, Fat: 14, Fiber: 0, Category: CategoryLeanProtein, HealthBenefits: []string{"muscle building", "protein"}},
		{Name: "fish", Calories: 206, Protein: 22, Carbs: 0, Fat: 12, Fiber: 0, Category: CategoryLeanProtein, HealthBenefits: []string{"omega-3", "heart health"}},
		{Name: "egg", Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11, Fiber: 0, Category: CategoryProtein, HealthBenefits: []string{"protein", "vitamin D"}},
		{Name: "paneer", Calories: 265, Protein: 18, Carbs: 1.2, Fat: 20, Fiber: 0, Category: CategoryDairyProtein, HealthBenefits: []string{"calcium", "protein"}},
		{Name: "tofu", Calories: 76, Protein: 8, Carbs: 1.9, Fat: 4.8, Fiber: 0.3, Category: CategoryPlantProtein, HealthBenefits: []string{"protein", "vegan"}},
		// Legumes
		{Name: "dal", Calories: 116, Protein: 9, Carbs: 20, Fat: 0.4, Fiber: 8, Category: CategoryLegume, HealthBenefits: []string{"protein", "fiber"}},
		{Name: "lentils", Calories: 116, Protein: 9, Carbs: 20, Fat: 0.4, Fiber: 8, Category: CategoryLegume, HealthBenefits: []string{"protein", "fiber"}},
		{Name: "chickpeas", Calories: 164, Protein: 8.9, Carbs: 27, Fat: 2.6, Fiber: 7.6, Category: CategoryLegume, HealthBenefits: []string{"protein", "fiber"}},
		{Name: "kidney beans", Calories: 127, Protein: 8.7, Carbs: 23, Fat: 0.5, Fiber: 6.4, Category: CategoryLegume, HealthBenefits: []string{"protein", "fiber"}},
		// Dairy
		{Name: "milk", Calories: 42, Protein: 3.4, Carbs: 5, Fat: 1, Fiber: 0, Category: CategoryDairy, HealthBenefits: []string{"calcium", "vitamin D"}},
		{Name: "yogurt", Calories: 59, Protein: 3.5, Carbs: 3.6, Fat: 3.3, Fiber: 0, Category: CategoryDairy, HealthBenefits: []string{"probiotics", "calcium"}},
		{Name: "curd", Calories: 59, Protein: 3.5, Carbs: 3.6, Fat: 3.3, Fiber: 0, Category: CategoryDairy, HealthBenefits: []string{"probiotics", "digestion"}},
		{Name: "cheese", Calories: 402, Protein: 25, Carbs: 1.3, Fat: 33, Fiber: 0, Category: CategoryDairy, HealthBenefits: []string{"calcium", "protein"}},
		// Sweets and desserts
		{Name: "pudding", Calories: 158, Protein: 4, Carbs: 22, Fat: 5.5, Fiber: 0, Sugar: grams(17), Category: CategoryDessert},
		{Name: "gulab jamun", Calories: 175, Protein: 3, Carbs: 25, Fat: 8, Fiber: 0.5, Sugar: grams(20), Category: CategoryDessert},
		{Name: "ice cream", Calories: 207, Protein: 3.5, Carbs: 24, Fat: 11, Fiber: 0.7, Sugar: grams(21), Category: CategoryDessert},
		{Name: "chocolate", Calories: 546, Protein: 4.9, Carbs: 61, Fat: 31, Fiber: 7, Sugar: grams(48), Category: CategoryDessert},
		{Name: "jalebi", Calories: 150, Protein: 1, Carbs: 28, Fat: 4, Fiber: 0, Sugar: grams(22), Category: CategoryDessert},
		// Snacks
		{Name: "samosa", Calories: 262, Protein: 3.5, Carbs: 24, Fat: 17, Fiber: 2, Category: CategoryFriedSnack},
		{Name: "pakora", Calories: 255, Protein: 5, Carbs: 22, Fat: 16, Fiber: 2.5, Category: CategoryFriedSnack},
		{Name: "french fries", Calories: 312, Protein: 3.4, Carbs: 41, Fat: 15, Fiber: 3.8, Category: CategoryFriedSnack},
		{Name: "chips", Calories: 536, Protein: 6.6, Carbs: 53, Fat: 34, Fiber: 4.5, Category: CategoryFriedSnack},
		// Beverages
		{Name: "green tea", Calories: 2, Protein: 0, Carbs: 0, Fat: 0, Fiber: 0, Category: CategoryBeverage, HealthBenefits: []string{"antioxidants", "metabolism"}},
		{Name: "coffee", Calories: 2, Protein: 0.3, Carbs: 0, Fat: 0, Fiber: 0, Category: CategoryBeverage, HealthBenefits: []string{"alertness"}},
		{Name: "fruit juice", Calories: 45, Protein: 0.5, Carbs: 11, Fat: 0.1, Fiber: 0.2, Sugar: grams(9), Category: CategoryBeverage, HealthBenefits: []string{"vitamins"}},
		// Nuts and seeds
		{Name: "almonds", Calories: 579, Protein: 21, Carbs: 22, Fat: 50, Fiber: 12.5, Category: CategoryNut, HealthBenefits: []string{"heart health", "vitamin E"}},
		{Name: "walnuts", Calories: 654, Protein: 15, Carbs: 14, Fat: 65, Fiber: 6.7, Category: CategoryNut, HealthBenefits: []string{"omega-3", "brain health"}},
		{Name: "peanuts", Calories: 567, Protein: 26, Carbs: 16, Fat: 49, Fiber: 8.5, Category: CategoryNut, HealthBenefits: []string{"protein", "energy"}},
	}
}

// DefaultCatalog builds a catalog from DefaultEntries
func DefaultCatalog() *Catalog {
	return MustNewCatalog(DefaultEntries())
}

func grams(v float64) *float64 {
	return &v
}

package models

// Category is the closed set of expense categories. It is shared by expenses,
// budgets, and every aggregation output, so adding a category is a
// single-point change here.
type Category string

const (
	CategoryFoodAndDining     Category = "FOOD_AND_DINING"
	CategoryTransportation    Category = "TRANSPORTATION"
	CategoryHousing           Category = "HOUSING"
	CategoryUtilities         Category = "UTILITIES"
	CategoryHealthcare        Category = "HEALTHCARE"
	CategoryEntertainment     Category = "ENTERTAINMENT"
	CategoryShopping          Category = "SHOPPING"
	CategoryEducation         Category = "EDUCATION"
	CategoryTravel            Category = "TRAVEL"
	CategoryInsurance         Category = "INSURANCE"
	CategorySavings           Category = "SAVINGS"
	CategoryPersonalCare      Category = "PERSONAL_CARE"
	CategoryGiftsAndDonations Category = "GIFTS_AND_DONATIONS"
	CategoryBusiness          Category = "BUSINESS"
	CategoryOther             Category = "OTHER"
)

// AllCategories lists every valid category in declaration order.
var AllCategories = []Category{
	CategoryFoodAndDining,
	CategoryTransportation,
	CategoryHousing,
	CategoryUtilities,
	CategoryHealthcare,
	CategoryEntertainment,
	CategoryShopping,
	CategoryEducation,
	CategoryTravel,
	CategoryInsurance,
	CategorySavings,
	CategoryPersonalCare,
	CategoryGiftsAndDonations,
	CategoryBusiness,
	CategoryOther,
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

package classification

// DefaultRules returns the built-in HSN category and sub-category rules.
func DefaultRules() Rules {
	return Rules{
		// HSN headings under chapter 73 (articles of iron or steel)
		Categories: []CategoryRule{
			{Prefix: "7323", Category: "Household Articles"},
			{Prefix: "7324", Category: "Sanitary Ware"},
			{Prefix: "7325", Category: "Cast Articles"},
			{Prefix: "7326", Category: "Other Iron Steel Articles"},
			{Prefix: "7321", Category: "Space Heating Apparatus"},
			{Prefix: "7322", Category: "Other Domestic Articles"},
		},
		// Declaration order is priority order: HOLDER beats BASKET, HANGER beats HOOK.
		Subcategories: []SubcategoryRule{
			{Keyword: "CUTLERY", SubCategory: "Cutlery & Utensils"},
			{Keyword: "HOLDER", SubCategory: "Holders & Stands"},
			{Keyword: "SCRUBBER", SubCategory: "Cleaning Tools"},
			{Keyword: "STRAINER", SubCategory: "Strainers & Filters"},
			{Keyword: "BASKET", SubCategory: "Baskets & Containers"},
			{Keyword: "HANGER", SubCategory: "Hangers & Hooks"},
			{Keyword: "DRAINER", SubCategory: "Drainers & Racks"},
			{Keyword: "SPRINKLER", SubCategory: "Sprinklers & Sprayers"},
			{Keyword: "BOTTLE", SubCategory: "Bottles & Containers"},
			{Keyword: "BLENDER", SubCategory: "Kitchen Appliances"},
			{Keyword: "HOOK", SubCategory: "Hooks & Hangers"},
			{Keyword: "STAND", SubCategory: "Stands & Racks"},
			{Keyword: "CLOTH", SubCategory: "Clothing Accessories"},
		},
		HouseholdPrefix: "7323",
		HouseholdLabel:  "General Household Items",
	}
}

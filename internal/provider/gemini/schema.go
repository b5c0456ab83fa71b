package gemini

type schema struct {
	Type       string            `json:"type"`
	Properties map[string]schema `json:"properties,omitempty"`
	Items      *schema           `json:"items,omitempty"`
	Enum       []string          `json:"enum,omitempty"`
	Required   []string          `json:"required,omitempty"`
}

var macroSchema = schema{
	Type: "OBJECT",
	Properties: map[string]schema{
		"protein": {Type: "NUMBER"},
		"carbs":   {Type: "NUMBER"},
		"fats":    {Type: "NUMBER"},
	},
}

// responseSchema mirrors model.NutritionEstimate.
var responseSchema = schema{
	Type: "OBJECT",
	Properties: map[string]schema{
		"foodItems": {
			Type: "ARRAY",
			Items: &schema{
				Type: "OBJECT",
				Properties: map[string]schema{
					"name":     {Type: "STRING"},
					"calories": {Type: "NUMBER"},
					"weight":   {Type: "STRING"},
					"macros":   macroSchema,
				},
			},
		},
		"totalCalories": {Type: "NUMBER"},
		"totalMacros":   macroSchema,
		"healthRating":  {Type: "STRING", Enum: []string{"Healthy", "Moderate", "Unhealthy"}},
		"suggestions":   {Type: "STRING"},
	},
	Required: []string{"foodItems", "totalCalories", "totalMacros", "healthRating", "suggestions"},
}

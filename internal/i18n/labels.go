package i18n

import "github.com/saadjs/caloriecam/internal/model"

var labels = map[model.Language]map[string]string{
	model.LanguageEnglish: {
		"rating.healthy":          "Healthy",
		"rating.moderate":         "Moderate",
		"rating.unhealthy":        "Unhealthy",
		"meal.breakfast":          "Breakfast",
		"meal.lunch":              "Lunch",
		"meal.dinner":             "Dinner",
		"meal.snack":              "Snack",
		"bmi.underweight":         "Underweight",
		"bmi.normal":              "Normal",
		"bmi.overweight":          "Overweight",
		"bmi.obese":               "Obese",
		"shape.hourglass":         "Hourglass",
		"shape.pear":              "Pear",
		"shape.apple":             "Apple",
		"shape.inverted_triangle": "Inverted Triangle",
		"shape.rectangle":         "Rectangle",
		"feedback.deficit":        "Great! You still have {amount} kcal left for today.",
		"feedback.surplus":        "You went over your goal by {amount} kcal.",
		"feedback.goal":           "You hit your calorie goal for today.",
		"weekly.good":             "Good progress",
		"weekly.above":            "Above goal",
		"today":                   "Today",
		"yesterday":               "Yesterday",
		"tomorrow":                "Tomorrow",
		"kcal":                    "kcal",
		"protein":                 "Protein",
		"carbs":                   "Carbs",
		"fats":                    "Fats",
		"no_meals":                "No meals logged for this day.",
		"no_history":              "No history yet.",
		"failed_analysis":         "Failed to analyze the meal. Please try again.",
		"analyzing":               "Analyzing your meal...",
	},
	model.LanguageArabic: {
		"rating.healthy":          "صحي",
		"rating.moderate":         "متوسط",
		"rating.unhealthy":        "غير صحي",
		"meal.breakfast":          "فطور",
		"meal.lunch":              "غداء",
		"meal.dinner":             "عشاء",
		"meal.snack":              "وجبة خفيفة",
		"bmi.underweight":         "نقص في الوزن",
		"bmi.normal":              "وزن طبيعي",
		"bmi.overweight":          "زيادة في الوزن",
		"bmi.obese":               "سمنة",
		"shape.hourglass":         "الساعة الرملية",
		"shape.pear":              "الكمثرى",
		"shape.apple":             "التفاحة",
		"shape.inverted_triangle": "المثلث المقلوب",
		"shape.rectangle":         "المستطيل",
		"feedback.deficit":        "رائع! تبقى لك {amount} سعرة لهذا اليوم.",
		"feedback.surplus":        "لقد تجاوزت هدفك بمقدار {amount} سعرة.",
		"feedback.goal":           "لقد حققت هدفك من السعرات اليوم.",
		"weekly.good":             "تقدم جيد",
		"weekly.above":            "فوق الهدف",
		"today":                   "اليوم",
		"yesterday":               "أمس",
		"tomorrow":                "غداً",
		"kcal":                    "سعرة",
		"protein":                 "بروتين",
		"carbs":                   "كربوهيدرات",
		"fats":                    "دهون",
		"no_meals":                "لا توجد وجبات مسجلة لهذا اليوم.",
		"no_history":              "لا يوجد سجل بعد.",
		"failed_analysis":         "فشل تحليل الوجبة. حاول مرة أخرى.",
		"analyzing":               "جاري تحليل وجبتك...",
	},
}

package service

import (
	"math"
	"sort"
	"time"

	"github.com/saadjs/caloriecam/internal/model"
)

type DayTotals struct {
	Calories float64              `json:"calories"`
	Macros   model.MacroNutrients `json:"macros"`
	Entries  int                  `json:"entries"`
}

type MealGroup struct {
	MealType model.MealType         `json:"meal_type"`
	Calories float64                `json:"calories"`
	Entries  []model.AnalysisResult `json:"entries"`
}

type WeeklySummary struct {
	Average      int  `json:"average"`
	DaysWithData int  `json:"days_with_data"`
	OnTrack      bool `json:"on_track"`
}

type TrendPoint struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Goal     int     `json:"goal"`
}

type MacroSlice struct {
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
}

type BMIResult struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}

type DayHistory struct {
	Date     string                 `json:"date"`
	Calories float64                `json:"calories"`
	Entries  []model.AnalysisResult `json:"entries"`
}

type CalendarDay struct {
	Date     string  `json:"date"`
	Day      int     `json:"day"`
	Calories float64 `json:"calories"`
	Status   string  `json:"status"`
}

type CalendarView struct {
	Month        string        `json:"month"`
	LeadingBlank int           `json:"leading_blank"`
	Days         []CalendarDay `json:"days"`
}

type Feedback struct {
	Kind   string `json:"kind"`
	Amount int    `json:"amount"`
}

const (
	StatusNone    = "none"
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusDanger  = "danger"

	BMIUnderweight = "underweight"
	BMINormal      = "normal"
	BMIOverweight  = "overweight"
	BMIObese       = "obese"

	ShapeHourglass        = "hourglass"
	ShapePear             = "pear"
	ShapeApple            = "apple"
	ShapeInvertedTriangle = "inverted_triangle"
	ShapeRectangle        = "rectangle"

	FeedbackDeficit = "deficit"
	FeedbackSurplus = "surplus"
	FeedbackGoal    = "goal"
)

// EntriesOn returns the entries whose timestamp falls on day's local date.
func EntriesOn(entries []model.AnalysisResult, day time.Time) []model.AnalysisResult {
	out := make([]model.AnalysisResult, 0)
	for _, e := range entries {
		if sameDay(EntryTime(e), day) {
			out = append(out, e)
		}
	}
	return out
}

func DailyTotals(entries []model.AnalysisResult, day time.Time) DayTotals {
	var t DayTotals
	for _, e := range EntriesOn(entries, day) {
		t.Calories += e.TotalCalories
		t.Macros = t.Macros.Add(e.TotalMacros)
		t.Entries++
	}
	return t
}

// GroupByMeal always returns the four meal groups in display order.
func GroupByMeal(entries []model.AnalysisResult) []MealGroup {
	groups := make([]MealGroup, 0, len(model.MealOrder))
	for _, mt := range model.MealOrder {
		g := MealGroup{MealType: mt, Entries: make([]model.AnalysisResult, 0)}
		for _, e := range entries {
			if e.MealType == mt {
				g.Entries = append(g.Entries, e)
				g.Calories += e.TotalCalories
			}
		}
		sort.SliceStable(g.Entries, func(i, j int) bool { return g.Entries[i].Timestamp < g.Entries[j].Timestamp })
		groups = append(groups, g)
	}
	return groups
}

// WeeklyAverage averages the 7 days ending at date over the days that have
// at least one entry.
func WeeklyAverage(entries []model.AnalysisResult, date time.Time, goal int) WeeklySummary {
	var total float64
	days := 0
	end := startOfDay(date)
	for i := 0; i < 7; i++ {
		t := DailyTotals(entries, end.AddDate(0, 0, -i))
		if t.Entries == 0 {
			continue
		}
		total += t.Calories
		days++
	}
	out := WeeklySummary{DaysWithData: days}
	if days > 0 {
		out.Average = int(math.Round(total / float64(days)))
	}
	out.OnTrack = out.Average > 0 && out.Average <= goal
	return out
}

// WeeklyTrend returns seven points from date-6 through date.
func WeeklyTrend(entries []model.AnalysisResult, date time.Time, goal int) []TrendPoint {
	end := startOfDay(date)
	out := make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)
		out = append(out, TrendPoint{
			Date:     DateKey(day),
			Calories: DailyTotals(entries, day).Calories,
			Goal:     goal,
		})
	}
	return out
}

// MacroDistribution sums macros across all entries. It is empty when there is
// nothing to chart.
func MacroDistribution(entries []model.AnalysisResult) []MacroSlice {
	var sum model.MacroNutrients
	for _, e := range entries {
		sum = sum.Add(e.TotalMacros)
	}
	if sum.Protein == 0 && sum.Carbs == 0 && sum.Fats == 0 {
		return []MacroSlice{}
	}
	return []MacroSlice{
		{Name: "protein", Grams: sum.Protein},
		{Name: "carbs", Grams: sum.Carbs},
		{Name: "fats", Grams: sum.Fats},
	}
}

// ComputeBMI returns weight/height² rounded to one decimal and its category.
func ComputeBMI(weightKg, heightCm float64) BMIResult {
	if weightKg <= 0 || heightCm <= 0 {
		return BMIResult{}
	}
	m := heightCm / 100
	v := math.Round(weightKg/(m*m)*10) / 10
	return BMIResult{Value: v, Category: BMICategory(v)}
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// ClassifyBodyShape applies the 20 cm difference heuristic. A missing chest
// measurement counts as equal to the hip.
func ClassifyBodyShape(m model.MeasurementsEntry) string {
	waist, hip := m.WaistCm, m.HipCm
	chest := hip
	if m.ChestCm != nil && *m.ChestCm != 0 {
		chest = *m.ChestCm
	}
	hipWaist := hip - waist
	chestWaist := chest - waist
	switch {
	case hipWaist >= 20 && chestWaist >= 20:
		return ShapeHourglass
	case hipWaist >= 20 && chestWaist < 20:
		return ShapePear
	case waist > hip:
		return ShapeApple
	case chestWaist >= 20 && chest > hip:
		return ShapeInvertedTriangle
	default:
		return ShapeRectangle
	}
}

func DayStatus(total float64, goal int, hasEntries bool) string {
	switch {
	case !hasEntries:
		return StatusNone
	case total <= float64(goal):
		return StatusSuccess
	case total <= float64(goal+200):
		return StatusWarning
	default:
		return StatusDanger
	}
}

// CalendarMonth builds the month grid containing month. LeadingBlank counts
// the empty cells before day 1 with Sunday as the first column.
func CalendarMonth(entries []model.AnalysisResult, month time.Time, goal int) CalendarView {
	month = month.In(time.Local)
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
	daysIn := first.AddDate(0, 1, -1).Day()
	view := CalendarView{
		Month:        first.Format("2006-01"),
		LeadingBlank: int(first.Weekday()),
		Days:         make([]CalendarDay, 0, daysIn),
	}
	for d := 1; d <= daysIn; d++ {
		day := first.AddDate(0, 0, d-1)
		t := DailyTotals(entries, day)
		view.Days = append(view.Days, CalendarDay{
			Date:     DateKey(day),
			Day:      d,
			Calories: t.Calories,
			Status:   DayStatus(t.Calories, goal, t.Entries > 0),
		})
	}
	return view
}

// CalorieFeedback compares consumed calories with the goal. Within 50 kcal
// either way counts as on goal.
func CalorieFeedback(consumed float64, goal int) Feedback {
	diff := float64(goal) - consumed
	amount := int(math.Round(math.Abs(diff)))
	switch {
	case diff < -50:
		return Feedback{Kind: FeedbackSurplus, Amount: amount}
	case diff <= 50:
		return Feedback{Kind: FeedbackGoal, Amount: amount}
	default:
		return Feedback{Kind: FeedbackDeficit, Amount: amount}
	}
}

// Remaining returns calories left for the day, never below zero.
func Remaining(consumed float64, goal int) int {
	r := int(math.Round(float64(goal) - consumed))
	if r < 0 {
		return 0
	}
	return r
}

// HistoryByDay groups entries by local date, newest day first.
func HistoryByDay(entries []model.AnalysisResult) []DayHistory {
	byDate := map[string]*DayHistory{}
	keys := make([]string, 0)
	for _, e := range entries {
		key := DateKey(EntryTime(e))
		h, ok := byDate[key]
		if !ok {
			h = &DayHistory{Date: key, Entries: make([]model.AnalysisResult, 0)}
			byDate[key] = h
			keys = append(keys, key)
		}
		h.Entries = append(h.Entries, e)
		h.Calories += e.TotalCalories
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	out := make([]DayHistory, 0, len(keys))
	for _, k := range keys {
		h := byDate[k]
		sort.SliceStable(h.Entries, func(i, j int) bool { return h.Entries[i].Timestamp > h.Entries[j].Timestamp })
		out = append(out, *h)
	}
	return out
}

package controller

import (
	"fmt"
	"time"

	"github.com/saadjs/caloriecam/internal/model"
	"github.com/saadjs/caloriecam/internal/service"
)

type DashboardView struct {
	Date      time.Time             `json:"date"`
	Profile   model.UserProfile     `json:"profile"`
	Totals    service.DayTotals     `json:"totals"`
	Remaining int                   `json:"remaining"`
	Feedback  service.Feedback      `json:"feedback"`
	Meals     []service.MealGroup   `json:"meals"`
	Weekly    service.WeeklySummary `json:"weekly"`
}

type AnalyticsView struct {
	Date   time.Time             `json:"date"`
	Goal   int                   `json:"goal"`
	Weekly service.WeeklySummary `json:"weekly"`
	Trend  []service.TrendPoint  `json:"trend"`
	Macros []service.MacroSlice  `json:"macros"`
}

type BodyView struct {
	Profile           model.UserProfile         `json:"profile"`
	BMI               service.BMIResult         `json:"bmi"`
	LatestWeight      *model.WeightEntry        `json:"latest_weight,omitempty"`
	LatestMeasurement *model.MeasurementsEntry  `json:"latest_measurement,omitempty"`
	Shape             string                    `json:"shape,omitempty"`
	Weights           []model.WeightEntry       `json:"weights"`
	Measurements      []model.MeasurementsEntry `json:"measurements"`
}

func (c *Controller) profile() (model.UserProfile, error) {
	p, err := service.GetProfile(c.db)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("load profile: %w", err)
	}
	if p == nil {
		return model.UserProfile{}, ErrNoProfile
	}
	return *p, nil
}

// Dashboard summarizes the selected date.
func (c *Controller) Dashboard() (DashboardView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	profile, err := c.profile()
	if err != nil {
		return DashboardView{}, err
	}
	entries, err := service.ListEntries(c.db)
	if err != nil {
		return DashboardView{}, err
	}
	totals := service.DailyTotals(entries, c.selected)
	return DashboardView{
		Date:      c.selected,
		Profile:   profile,
		Totals:    totals,
		Remaining: service.Remaining(totals.Calories, profile.TDEE),
		Feedback:  service.CalorieFeedback(totals.Calories, profile.TDEE),
		Meals:     service.GroupByMeal(service.EntriesOn(entries, c.selected)),
		Weekly:    service.WeeklyAverage(entries, c.selected, profile.TDEE),
	}, nil
}

// Analytics covers the week ending at the selected date and all-time macros.
func (c *Controller) Analytics() (AnalyticsView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	profile, err := c.profile()
	if err != nil {
		return AnalyticsView{}, err
	}
	entries, err := service.ListEntries(c.db)
	if err != nil {
		return AnalyticsView{}, err
	}
	return AnalyticsView{
		Date:   c.selected,
		Goal:   profile.TDEE,
		Weekly: service.WeeklyAverage(entries, c.selected, profile.TDEE),
		Trend:  service.WeeklyTrend(entries, c.selected, profile.TDEE),
		Macros: service.MacroDistribution(entries),
	}, nil
}

func (c *Controller) Calendar(month time.Time) (service.CalendarView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	profile, err := c.profile()
	if err != nil {
		return service.CalendarView{}, err
	}
	entries, err := service.ListEntries(c.db)
	if err != nil {
		return service.CalendarView{}, err
	}
	return service.CalendarMonth(entries, month, profile.TDEE), nil
}

// Body reports BMI from the newest weight entry, or the profile weight when
// none is logged, and the body shape from the most recent measurements.
func (c *Controller) Body() (BodyView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	profile, err := c.profile()
	if err != nil {
		return BodyView{}, err
	}
	weights, err := service.ListWeights(c.db)
	if err != nil {
		return BodyView{}, err
	}
	measurements, err := service.ListMeasurements(c.db)
	if err != nil {
		return BodyView{}, err
	}
	view := BodyView{
		Profile:      profile,
		Weights:      weights,
		Measurements: measurements,
	}
	current := profile.WeightKg
	if len(weights) > 0 {
		view.LatestWeight = &weights[0]
		current = weights[0].WeightKg
	}
	view.BMI = service.ComputeBMI(current, profile.HeightCm)
	if len(measurements) > 0 {
		view.LatestMeasurement = &measurements[0]
		view.Shape = service.ClassifyBodyShape(measurements[0])
	}
	return view, nil
}

func (c *Controller) History() ([]service.DayHistory, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, err := service.ListEntries(c.db)
	if err != nil {
		return nil, err
	}
	return service.HistoryByDay(entries), nil
}

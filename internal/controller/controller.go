package controller

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/saadjs/caloriecam/internal/i18n"
	"github.com/saadjs/caloriecam/internal/model"
	"github.com/saadjs/caloriecam/internal/service"
	"github.com/sirupsen/logrus"
)

type View string

const (
	ViewProfileSetup   View = "profile_setup"
	ViewDashboard      View = "dashboard"
	ViewHistory        View = "history"
	ViewCalendar       View = "calendar"
	ViewAnalytics      View = "analytics"
	ViewBody           View = "body"
	ViewCamera         View = "camera"
	ViewManualEntry    View = "manual_entry"
	ViewAnalysisResult View = "analysis_result"
)

var navViews = map[View]bool{
	ViewDashboard: true,
	ViewHistory:   true,
	ViewCalendar:  true,
	ViewAnalytics: true,
	ViewBody:      true,
}

var (
	ErrInvalidTransition = errors.New("invalid view transition")
	ErrNoProfile         = errors.New("profile not set up")
	ErrAnalysisDiscarded = errors.New("analysis discarded")
	ErrNoPendingAnalysis = errors.New("no analysis to save")
)

// Analyzer turns a meal photo or description into a nutrition estimate.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, jpeg []byte, lang model.Language) (model.NutritionEstimate, error)
	AnalyzeText(ctx context.Context, description string, lang model.Language) (model.NutritionEstimate, error)
}

type Option func(*Controller)

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = log }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLanguage overrides the stored language for the controller's lifetime
// without persisting it. Analyses are requested in this language.
func WithLanguage(lang model.Language) Option {
	return func(c *Controller) { c.langOverride = lang }
}

// Controller owns the current view and every piece of state shared between
// views. It is safe for concurrent use; analysis calls run without the lock
// held and are matched back to their session when they return.
type Controller struct {
	mu       sync.Mutex
	db       *sql.DB
	analyzer Analyzer
	log      logrus.FieldLogger
	now      func() time.Time

	view       View
	selected   time.Time
	lang       model.Language
	pending    *model.NutritionEstimate
	analyzing  bool
	targetDate time.Time
	source     model.EntrySource
	image      []byte
	session    uint64

	langOverride model.Language
}

func New(db *sql.DB, analyzer Analyzer, opts ...Option) (*Controller, error) {
	c := &Controller{db: db, analyzer: analyzer, log: logrus.StandardLogger(), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	profile, err := service.GetProfile(db)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	c.view = ViewDashboard
	if profile == nil {
		c.view = ViewProfileSetup
	}
	if c.lang, err = service.GetLanguage(db); err != nil {
		return nil, fmt.Errorf("load language: %w", err)
	}
	if c.langOverride != "" {
		c.lang = c.langOverride
	}
	c.selected = c.now()
	return c, nil
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Analyzing reports whether an analysis call is in flight.
func (c *Controller) Analyzing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.analyzing
}

// Pending returns the estimate awaiting save or discard, if any.
func (c *Controller) Pending() *model.NutritionEstimate {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return nil
	}
	est := *c.pending
	return &est
}

func (c *Controller) Language() model.Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lang
}

func (c *Controller) SelectedDate() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

func (c *Controller) setView(v View) {
	if c.view != v {
		c.log.WithFields(logrus.Fields{"from": c.view, "to": v}).Debug("view transition")
	}
	c.view = v
}

func invalid(from, to View) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// CompleteProfile saves a new profile and leaves onboarding.
func (c *Controller) CompleteProfile(in service.ProfileInput) (model.UserProfile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != ViewProfileSetup {
		return model.UserProfile{}, invalid(c.view, ViewDashboard)
	}
	if in.Language == "" {
		in.Language = c.lang
	}
	profile := service.NewProfile(in)
	if err := service.SaveProfile(c.db, profile); err != nil {
		return model.UserProfile{}, fmt.Errorf("save profile: %w", err)
	}
	c.setView(ViewDashboard)
	return profile, nil
}

// ResetProfile returns to onboarding so the profile and its energy target
// can be recreated. Logged data is kept.
func (c *Controller) ResetProfile() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !navViews[c.view] && c.view != ViewProfileSetup {
		return invalid(c.view, ViewProfileSetup)
	}
	c.setView(ViewProfileSetup)
	return nil
}

func (c *Controller) Navigate(v View) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !navViews[v] || !navViews[c.view] {
		return invalid(c.view, v)
	}
	c.setView(v)
	return nil
}

// StartCapture opens the camera for a meal logged on date.
func (c *Controller) StartCapture(date time.Time) error {
	return c.startEntry(ViewCamera, model.SourceCamera, date)
}

// StartManual opens the text entry form for a meal logged on date.
func (c *Controller) StartManual(date time.Time) error {
	return c.startEntry(ViewManualEntry, model.SourceManual, date)
}

func (c *Controller) startEntry(to View, source model.EntrySource, date time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != ViewDashboard {
		return invalid(c.view, to)
	}
	c.targetDate = date
	c.source = source
	c.image = nil
	c.setView(to)
	return nil
}

// Cancel closes the camera or text entry form.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != ViewCamera && c.view != ViewManualEntry {
		return invalid(c.view, ViewDashboard)
	}
	c.clearCapture()
	c.setView(ViewDashboard)
	return nil
}

// SubmitImage analyzes a captured photo. It is accepted from the camera or,
// as an upload, straight from the dashboard for the selected date.
func (c *Controller) SubmitImage(ctx context.Context, jpeg []byte) (model.NutritionEstimate, error) {
	c.mu.Lock()
	switch c.view {
	case ViewCamera:
	case ViewDashboard:
		c.targetDate = c.selected
		c.source = model.SourceCamera
	default:
		from := c.view
		c.mu.Unlock()
		return model.NutritionEstimate{}, invalid(from, ViewAnalysisResult)
	}
	c.image = append([]byte(nil), jpeg...)
	session, lang := c.beginAnalysis()
	c.mu.Unlock()

	est, err := c.analyzer.AnalyzeImage(ctx, jpeg, lang)
	return c.finishAnalysis(session, est, err)
}

// SubmitDescription analyzes a free-text meal description.
func (c *Controller) SubmitDescription(ctx context.Context, description string) (model.NutritionEstimate, error) {
	c.mu.Lock()
	if c.view != ViewManualEntry {
		from := c.view
		c.mu.Unlock()
		return model.NutritionEstimate{}, invalid(from, ViewAnalysisResult)
	}
	session, lang := c.beginAnalysis()
	c.mu.Unlock()

	est, err := c.analyzer.AnalyzeText(ctx, description, lang)
	return c.finishAnalysis(session, est, err)
}

func (c *Controller) beginAnalysis() (uint64, model.Language) {
	c.session++
	c.pending = nil
	c.analyzing = true
	c.setView(ViewAnalysisResult)
	return c.session, c.lang
}

func (c *Controller) finishAnalysis(session uint64, est model.NutritionEstimate, err error) (model.NutritionEstimate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if session != c.session || c.view != ViewAnalysisResult {
		c.log.WithField("session", session).Warn("dropping analysis result for a discarded session")
		return model.NutritionEstimate{}, ErrAnalysisDiscarded
	}
	c.analyzing = false
	if err != nil {
		c.log.WithError(err).Warn("analysis failed")
		c.clearCapture()
		c.setView(ViewDashboard)
		return model.NutritionEstimate{}, fmt.Errorf("analyze meal: %w", err)
	}
	c.pending = &est
	return est, nil
}

// SaveAnalysis logs the pending estimate as a meal and returns to the
// dashboard.
func (c *Controller) SaveAnalysis(mealType model.MealType) (model.AnalysisResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != ViewAnalysisResult {
		return model.AnalysisResult{}, invalid(c.view, ViewDashboard)
	}
	if c.pending == nil {
		return model.AnalysisResult{}, ErrNoPendingAnalysis
	}
	now := c.now()
	ts := now
	if !c.targetDate.IsZero() {
		ts = service.AtTimeOfDay(c.targetDate, now)
	}
	item := model.AnalysisResult{
		ID:                service.NewEntryID(),
		Timestamp:         ts.UnixMilli(),
		MealType:          mealType,
		Source:            c.source,
		NutritionEstimate: *c.pending,
	}
	if item.Source == "" {
		item.Source = model.SourceCamera
	}
	if item.Source == model.SourceCamera && len(c.image) > 0 {
		item.ImageURL = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(c.image)
	}
	if err := service.AppendEntry(c.db, item); err != nil {
		return model.AnalysisResult{}, fmt.Errorf("save meal: %w", err)
	}
	c.clearCapture()
	c.setView(ViewDashboard)
	return item, nil
}

// DiscardAnalysis drops the pending estimate. An analysis still in flight is
// abandoned and its result ignored.
func (c *Controller) DiscardAnalysis() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != ViewAnalysisResult {
		return invalid(c.view, ViewDashboard)
	}
	c.session++
	c.analyzing = false
	c.clearCapture()
	c.setView(ViewDashboard)
	return nil
}

func (c *Controller) clearCapture() {
	c.pending = nil
	c.image = nil
	c.targetDate = time.Time{}
	c.source = ""
}

func (c *Controller) DeleteEntry(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return service.DeleteEntry(c.db, id)
}

func (c *Controller) UpdateEntry(item model.AnalysisResult) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return service.UpdateEntry(c.db, item)
}

// EditEntry applies the edit form to the entry with id. It returns nil when
// the entry does not exist.
func (c *Controller) EditEntry(id string, in service.EditEntryInput) (*model.AnalysisResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, err := service.EntryByID(c.db, id)
	if err != nil || item == nil {
		return nil, err
	}
	edited, err := service.ApplyEdit(*item, in)
	if err != nil {
		return nil, err
	}
	if _, err := service.UpdateEntry(c.db, edited); err != nil {
		return nil, err
	}
	return &edited, nil
}

// DuplicateEntry copies a meal onto date at the current time of day.
func (c *Controller) DuplicateEntry(id string, date time.Time) (*model.AnalysisResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return service.DuplicateEntry(c.db, id, service.AtTimeOfDay(date, c.now()))
}

// SaveWeight records a weight and then copies it onto the profile. The two
// writes are independent; a failed profile sync leaves the weight saved.
func (c *Controller) SaveWeight(entry model.WeightEntry) (model.WeightEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	saved, err := service.UpsertWeight(c.db, entry)
	if err != nil {
		return saved, err
	}
	profile, err := service.GetProfile(c.db)
	if err != nil {
		return saved, fmt.Errorf("sync profile weight: %w", err)
	}
	if profile == nil {
		return saved, nil
	}
	profile.WeightKg = saved.WeightKg
	if err := service.SaveProfile(c.db, *profile); err != nil {
		return saved, fmt.Errorf("sync profile weight: %w", err)
	}
	return saved, nil
}

func (c *Controller) SaveMeasurements(entry model.MeasurementsEntry) (model.MeasurementsEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return service.UpsertMeasurement(c.db, entry)
}

func (c *Controller) SetSelectedDate(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = t
}

func (c *Controller) ShiftSelectedDate(days int) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = c.selected.AddDate(0, 0, days)
	return c.selected
}

func (c *Controller) SetLanguage(lang model.Language) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := service.SaveLanguage(c.db, lang); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	c.lang = lang
	return nil
}

func (c *Controller) ToggleLanguage() (model.Language, error) {
	next := i18n.Toggle(c.Language())
	if err := c.SetLanguage(next); err != nil {
		return "", err
	}
	return next, nil
}

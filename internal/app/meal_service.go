package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bodylog/internal/domain"
)

// MealInput is the caller-supplied part of a meal. Empty name and section
// fall back to defaults; negative macros are rejected.
type MealInput struct {
	Name    string
	Section string
	domain.Macros
}

// MealSection groups the meals logged in one section.
type MealSection struct {
	Name  string        `json:"name"`
	Meals []domain.Meal `json:"meals"`
}

// MealSummary is the derived view of the meal log.
type MealSummary struct {
	Totals   domain.Macros `json:"totals"`
	Goals    domain.Macros `json:"goals"`
	Progress domain.Macros `json:"progress"`
	Sections []MealSection `json:"sections"`
}

// MealService encapsulates meal-tracking use cases.
type MealService struct {
	store domain.DocumentStore
	goals domain.Macros
	log   *slog.Logger

	mu    sync.Mutex
	meals []domain.Meal

	newID func() string
}

// NewMealService creates a MealService backed by the given store. Zero
// goals fall back to domain.DefaultMacroGoals.
func NewMealService(store domain.DocumentStore, goals domain.Macros, log *slog.Logger) *MealService {
	if goals == (domain.Macros{}) {
		goals = domain.DefaultMacroGoals
	}
	if log == nil {
		log = slog.Default()
	}
	return &MealService{
		store: store,
		goals: goals,
		log:   log,
		meals: []domain.Meal{},
		newID: uuid.NewString,
	}
}

// Load reads the persisted meal log into memory. An unreadable document is
// replaced with an empty log.
func (s *MealService) Load(ctx context.Context) ([]domain.Meal, error) {
	raw, err := s.store.Get(ctx, MealsKey)
	if err != nil {
		return nil, fmt.Errorf("load meals: %w", err)
	}

	meals := []domain.Meal{}
	if raw != nil {
		decoded, err := decodeMeals(raw)
		if err != nil {
			storeLoadFallbacks.WithLabelValues(MealsKey).Inc()
			s.log.Warn("discarding unreadable meals document", "key", MealsKey, "error", err)
		} else {
			meals = decoded
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.meals = meals
	return append([]domain.Meal{}, s.meals...), nil
}

// List returns a copy of the logged meals in insertion order.
func (s *MealService) List() []domain.Meal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Meal{}, s.meals...)
}

// AddMeal logs a new meal.
func (s *MealService) AddMeal(ctx context.Context, in MealInput) (domain.Meal, error) {
	meal, err := buildMeal(s.newID(), in)
	if err != nil {
		return domain.Meal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append([]domain.Meal{}, s.meals...), meal)
	if err := s.persist(ctx, next); err != nil {
		return domain.Meal{}, err
	}
	return meal, nil
}

// UpdateMeal replaces every field of the meal with id except the id itself.
func (s *MealService) UpdateMeal(ctx context.Context, id string, in MealInput) (domain.Meal, error) {
	meal, err := buildMeal(id, in)
	if err != nil {
		return domain.Meal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := mealIndex(s.meals, id)
	if idx < 0 {
		return domain.Meal{}, fmt.Errorf("%w: %s", domain.ErrMealNotFound, id)
	}
	next := append([]domain.Meal{}, s.meals...)
	next[idx] = meal
	if err := s.persist(ctx, next); err != nil {
		return domain.Meal{}, err
	}
	return meal, nil
}

// DeleteMeal removes the meal with id. Unknown ids are a no-op.
func (s *MealService) DeleteMeal(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := mealIndex(s.meals, id)
	if idx < 0 {
		return false, nil
	}
	next := make([]domain.Meal, 0, len(s.meals)-1)
	next = append(next, s.meals[:idx]...)
	next = append(next, s.meals[idx+1:]...)
	if err := s.persist(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Summary returns totals, goals and progress together with the meals grouped
// by section.
func (s *MealService) Summary() MealSummary {
	meals := s.List()
	totals := domain.MealTotals(meals)

	sections := make([]MealSection, 0, len(domain.MealSections()))
	for _, name := range domain.MealSections() {
		sec := MealSection{Name: name, Meals: []domain.Meal{}}
		for _, m := range meals {
			if m.Section == name {
				sec.Meals = append(sec.Meals, m)
			}
		}
		sections = append(sections, sec)
	}

	return MealSummary{
		Totals:   totals,
		Goals:    s.goals,
		Progress: domain.MealProgress(totals, s.goals),
		Sections: sections,
	}
}

func (s *MealService) persist(ctx context.Context, next []domain.Meal) error {
	raw, err := encodeMeals(next)
	if err != nil {
		return fmt.Errorf("persist meals: %w", err)
	}
	start := time.Now()
	err = s.store.Put(ctx, MealsKey, raw)
	observeWrite(MealsKey, start, err)
	if err != nil {
		s.log.Error("meals write failed", "key", MealsKey, "error", err)
		return fmt.Errorf("persist meals: %w", err)
	}
	s.meals = next
	return nil
}

func buildMeal(id string, in MealInput) (domain.Meal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = domain.DefaultMealName
	}
	section := strings.TrimSpace(in.Section)
	if section == "" {
		section = domain.SectionBreakfast
	}
	if !domain.ValidSection(section) {
		return domain.Meal{}, fmt.Errorf("%w: unknown section %q", domain.ErrInvalidValue, section)
	}
	m := in.Macros
	for _, v := range []float64{m.Calories, m.Protein, m.Carbs, m.Fat} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.Meal{}, fmt.Errorf("%w: macros must be finite and >= 0", domain.ErrInvalidValue)
		}
	}
	return domain.Meal{ID: id, Name: name, Section: section, Macros: m}, nil
}

func mealIndex(meals []domain.Meal, id string) int {
	for i, m := range meals {
		if m.ID == id {
			return i
		}
	}
	return -1
}

package app_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"bodylog/internal/app"
	"bodylog/internal/domain"
)

func TestAddMeal_DefaultsAndPersist(t *testing.T) {
	store := newMockStore()
	svc := app.NewMealService(store, domain.Macros{}, quietLogger())

	meal, err := svc.AddMeal(context.Background(), app.MealInput{Macros: domain.Macros{Calories: 200}})
	if err != nil {
		t.Fatalf("AddMeal: %v", err)
	}
	if meal.Name != domain.DefaultMealName || meal.Section != domain.SectionBreakfast {
		t.Fatalf("expected defaults, got %+v", meal)
	}

	loaded, err := app.NewMealService(store, domain.Macros{}, quietLogger()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != meal.ID || loaded[0].Calories != 200 {
		t.Fatalf("unexpected persisted meals: %+v", loaded)
	}
}

func TestAddMeal_Validation(t *testing.T) {
	svc := app.NewMealService(newMockStore(), domain.Macros{}, quietLogger())

	tests := []struct {
		name string
		in   app.MealInput
	}{
		{"unknown section", app.MealInput{Section: "Supper"}},
		{"negative macro", app.MealInput{Macros: domain.Macros{Fat: -1}}},
		{"NaN macro", app.MealInput{Macros: domain.Macros{Calories: math.NaN()}}},
		{"infinite macro", app.MealInput{Macros: domain.Macros{Protein: math.Inf(1)}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddMeal(context.Background(), tc.in); !errors.Is(err, domain.ErrInvalidValue) {
				t.Fatalf("expected ErrInvalidValue, got %v", err)
			}
		})
	}
}

func TestUpdateAndDeleteMeal(t *testing.T) {
	store := newMockStore()
	svc := app.NewMealService(store, domain.Macros{}, quietLogger())
	ctx := context.Background()

	meal, _ := svc.AddMeal(ctx, app.MealInput{Name: "Toast", Section: domain.SectionBreakfast})

	updated, err := svc.UpdateMeal(ctx, meal.ID, app.MealInput{Name: "Pasta", Section: domain.SectionDinner, Macros: domain.Macros{Calories: 700}})
	if err != nil {
		t.Fatalf("UpdateMeal: %v", err)
	}
	if updated.ID != meal.ID || updated.Name != "Pasta" || updated.Section != domain.SectionDinner {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if _, err := svc.UpdateMeal(ctx, "missing", app.MealInput{}); !errors.Is(err, domain.ErrMealNotFound) {
		t.Fatalf("expected ErrMealNotFound, got %v", err)
	}

	deleted, err := svc.DeleteMeal(ctx, meal.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteMeal: deleted=%v err=%v", deleted, err)
	}
	deleted, err = svc.DeleteMeal(ctx, meal.ID)
	if err != nil || deleted {
		t.Fatalf("repeated DeleteMeal: deleted=%v err=%v", deleted, err)
	}
	if len(svc.List()) != 0 {
		t.Fatal("expected empty meal log")
	}
}

func TestMealSummary(t *testing.T) {
	svc := app.NewMealService(newMockStore(), domain.Macros{}, quietLogger())
	ctx := context.Background()

	_, _ = svc.AddMeal(ctx, app.MealInput{Name: "Oatmeal with Banana", Section: domain.SectionBreakfast, Macros: domain.Macros{Calories: 350, Protein: 18, Carbs: 50, Fat: 8}})
	_, _ = svc.AddMeal(ctx, app.MealInput{Name: "Chicken & Rice", Section: domain.SectionLunch, Macros: domain.Macros{Calories: 600, Protein: 45, Carbs: 70, Fat: 15}})

	sum := svc.Summary()
	if sum.Totals.Calories != 950 {
		t.Fatalf("expected 950 kcal, got %v", sum.Totals.Calories)
	}
	if sum.Progress.Calories != 0.38 {
		t.Fatalf("expected progress 0.38, got %v", sum.Progress.Calories)
	}
	if sum.Goals != domain.DefaultMacroGoals {
		t.Fatalf("expected default goals, got %+v", sum.Goals)
	}
	if len(sum.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(sum.Sections))
	}
	if sum.Sections[0].Name != domain.SectionBreakfast || len(sum.Sections[0].Meals) != 1 {
		t.Fatalf("unexpected breakfast section: %+v", sum.Sections[0])
	}
	if len(sum.Sections[1].Meals) != 0 || len(sum.Sections[2].Meals) != 1 {
		t.Fatalf("unexpected grouping: %+v", sum.Sections)
	}
}

func TestMealLoad_CorruptDocument(t *testing.T) {
	store := newMockStore()
	store.docs[app.MealsKey] = []byte("not json")
	meals, err := app.NewMealService(store, domain.Macros{}, quietLogger()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(meals) != 0 {
		t.Fatalf("expected empty log, got %v", meals)
	}
}

func TestMealWriteFailure(t *testing.T) {
	store := newMockStore()
	store.putFn = func(_ context.Context, _ string, _ []byte) error { return errors.New("db down") }
	svc := app.NewMealService(store, domain.Macros{}, quietLogger())

	if _, err := svc.AddMeal(context.Background(), app.MealInput{}); err == nil {
		t.Fatal("expected write error")
	}
	if len(svc.List()) != 0 {
		t.Fatal("failed write must not change the meal log")
	}
}

package adapthttp

import (
	"net/http"

	"bodylog/internal/app"
	"bodylog/internal/domain"
)

type mealBody struct {
	Name     string        `json:"name"`
	Section  string        `json:"section"`
	Calories lenientNumber `json:"calories"`
	Protein  lenientNumber `json:"protein"`
	Carbs    lenientNumber `json:"carbs"`
	Fat      lenientNumber `json:"fat"`
}

func (b mealBody) input() app.MealInput {
	return app.MealInput{
		Name:    b.Name,
		Section: b.Section,
		Macros: domain.Macros{
			Calories: float64(b.Calories),
			Protein:  float64(b.Protein),
			Carbs:    float64(b.Carbs),
			Fat:      float64(b.Fat),
		},
	}
}

func (s *Server) handleMeals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.meals.Summary())

	case http.MethodPost:
		var body mealBody
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		meal, err := s.meals.AddMeal(r.Context(), body.input())
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"meal": meal})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleMeal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodPut:
		var body mealBody
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		meal, err := s.meals.UpdateMeal(r.Context(), id, body.input())
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"meal": meal})

	case http.MethodDelete:
		deleted, err := s.meals.DeleteMeal(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

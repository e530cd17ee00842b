package adapthttp

import (
	"net/http"

	"bodylog/internal/domain"
)

func (s *Server) handleBMI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Weight number `json:"weight"`
		Height number `json:"height"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	bmi, err := domain.ComputeBMI(float64(body.Weight), float64(body.Height))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bmi": bmi, "category": domain.ClassifyBMI(bmi)})
}

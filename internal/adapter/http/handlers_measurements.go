package adapthttp

import (
	"net/http"
	"time"

	"bodylog/internal/domain"
)

func (s *Server) handleMetricList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"metrics": domain.Metrics()})
}

func (s *Server) handleMeasurements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"metrics": s.measurements.Snapshot()})
}

func (s *Server) handleMetricEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	metric := metricParam(r)

	switch r.Method {
	case http.MethodGet:
		entries, err := s.charts.Sorted(metric)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"metric": metric, "entries": entries})

	case http.MethodPost:
		var body struct {
			Value number    `json:"value"`
			Date  time.Time `json:"date"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := s.measurements.AddEntry(ctx, metric, float64(body.Value), body.Date)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	metric := metricParam(r)
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodPut:
		var body struct {
			Value number `json:"value"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := s.measurements.UpdateEntryValue(ctx, metric, id, float64(body.Value))
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})

	case http.MethodDelete:
		deleted, err := s.measurements.DeleteEntry(ctx, metric, id)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

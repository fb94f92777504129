package web

import (
	"net/http"
	"strconv"

	"github.com/vbonduro/tastetrails/internal/domain"
	"github.com/vbonduro/tastetrails/internal/places"
)

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.service.Cities(r.URL.Query().Get("q")))
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.service.Progress())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.service.Stats())
}

func (s *Server) handleWrapped(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, s.service.Wrapped(year))
}

func (s *Server) handleWrappedStory(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	story, err := s.service.Narrate(r.Context(), year)
	if err != nil {
		s.writeServiceError(w, "narrate recap", err)
		return
	}
	s.writeJSON(w, http.StatusOK, story)
}

// parseYear reads ?year=; absent means the configured recap year.
func parseYear(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 || year > 9999 {
		return 0, errInvalidParam("year")
	}
	return year, nil
}

type options struct {
	PlaceTypes []string         `json:"placeTypes"`
	FoodTypes  []string         `json:"foodTypes"`
	Cuisines   []string         `json:"cuisines"`
	Prices     []domain.Price   `json:"prices"`
	Tags       []string         `json:"tags"`
	SortKeys   []places.SortKey `json:"sortKeys"`
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	food := make([]string, 0, len(domain.PlaceTypes))
	for _, t := range domain.PlaceTypes {
		if domain.IsFood(t) {
			food = append(food, t)
		}
	}
	s.writeJSON(w, http.StatusOK, options{
		PlaceTypes: domain.PlaceTypes,
		FoodTypes:  food,
		Cuisines:   domain.Cuisines,
		Prices:     domain.Prices,
		Tags:       domain.Tags,
		SortKeys:   []places.SortKey{places.SortName, places.SortRating, places.SortDate, places.SortUpdated},
	})
}

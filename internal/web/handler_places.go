package web

import (
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/vbonduro/tastetrails/internal/domain"
	"github.com/vbonduro/tastetrails/internal/places"
)

func (s *Server) handleListPlaces(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, s.service.View(q))
}

// parseQuery reads the browse filters from the URL query string.
func parseQuery(r *http.Request) (places.Query, error) {
	v := r.URL.Query()
	q := places.Query{
		Search:    strings.TrimSpace(v.Get("q")),
		PlaceType: v.Get("type"),
		Cuisine:   v.Get("cuisine"),
	}

	if raw := v.Get("minRating"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > places.MaxRating {
			return q, errInvalidParam("minRating")
		}
		q.MinRating = n
	}
	if raw := v.Get("favorites"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return q, errInvalidParam("favorites")
		}
		q.FavoritesOnly = b
	}
	if raw := v.Get("locale"); raw != "" {
		tag, err := language.Parse(raw)
		if err != nil {
			return q, errInvalidParam("locale")
		}
		q.Locale = tag
	}

	sort, err := places.ParseSortKey(v.Get("sort"))
	if err != nil {
		return q, err
	}
	q.Sort = sort
	return q, nil
}

type invalidParamError string

func (e invalidParamError) Error() string { return "invalid " + string(e) }

func errInvalidParam(name string) error { return invalidParamError(name) }

func (s *Server) handleCreatePlace(w http.ResponseWriter, r *http.Request) {
	var np domain.NewPlace
	if err := decodeJSON(w, r, &np); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := s.service.Add(r.Context(), np)
	if err != nil {
		s.writeServiceError(w, "add place", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetPlace(w http.ResponseWriter, r *http.Request) {
	p, err := s.service.Get(r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, "get place", err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdatePlace(w http.ResponseWriter, r *http.Request) {
	var u domain.PlaceUpdate
	if err := decodeJSON(w, r, &u); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := s.service.Update(r.Context(), r.PathValue("id"), u)
	if err != nil {
		s.writeServiceError(w, "update place", err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	p, err := s.service.ToggleFavorite(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, "toggle favorite", err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePlace(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Delete(r.Context(), r.PathValue("id"), confirmed(r)); err != nil {
		s.writeServiceError(w, "delete place", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNextPlace(w http.ResponseWriter, r *http.Request) {
	next, ok, err := s.service.Next(r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, "find next place", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"nextId": next, "hasNext": ok})
}

// confirmed reports whether the request carries confirm=true.
func confirmed(r *http.Request) bool {
	ok, err := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return err == nil && ok
}

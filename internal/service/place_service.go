package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/vbonduro/tastetrails/internal/archive"
	"github.com/vbonduro/tastetrails/internal/domain"
	"github.com/vbonduro/tastetrails/internal/exporter"
	"github.com/vbonduro/tastetrails/internal/narrate"
	"github.com/vbonduro/tastetrails/internal/places"
	"github.com/vbonduro/tastetrails/internal/seed"
	"github.com/vbonduro/tastetrails/internal/store"
)

const DefaultStorageKey = "taste-trails-data"

var (
	ErrPlaceNotFound          = errors.New("place not found")
	ErrConfirmationRequired   = errors.New("confirmation required")
	ErrImportDecisionRequired = errors.New("collection is not empty: choose replace or merge")
)

// ImportDecisionError is returned when an import into a non-empty collection
// did not say whether to replace or merge.
type ImportDecisionError struct {
	Pending int
	Current int
}

func (e *ImportDecisionError) Error() string {
	return fmt.Sprintf("%s (%d places in file, %d already saved)", ErrImportDecisionRequired, e.Pending, e.Current)
}

func (e *ImportDecisionError) Unwrap() error {
	return ErrImportDecisionRequired
}

// collectionRepository is the subset of store.CollectionStore that PlaceService requires.
type collectionRepository interface {
	Load(ctx context.Context, key string) (*store.Snapshot, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

type Options struct {
	StorageKey      string
	Locale          language.Tag
	WrappedYear     int
	WrappedMinTotal int
	// Location resolves timestamps to calendar years. Nil means UTC.
	Location *time.Location

	Now   func() time.Time
	NewID func() string
}

type ImportResult struct {
	Added int               `json:"added"`
	Total int               `json:"total"`
	Mode  places.ImportMode `json:"mode"`
}

type Export struct {
	Filename    string
	ContentType string
	Data        []byte
	ArchiveKey  string
}

type Stats struct {
	Total     int `json:"total"`
	Favorites int `json:"favorites"`
}

// PlaceService owns the canonical collection. Reads work on a snapshot and
// every mutation is persisted before it becomes visible.
type PlaceService struct {
	repo     collectionRepository
	narrator narrate.Narrator
	archive  archive.Archive
	logger   *slog.Logger
	opts     Options

	mu     sync.RWMutex
	places []domain.Place
}

// NewPlaceService wires the service. arch may be nil when archiving is disabled.
func NewPlaceService(
	repo collectionRepository,
	narrator narrate.Narrator,
	arch archive.Archive,
	logger *slog.Logger,
	opts Options,
) *PlaceService {
	if opts.StorageKey == "" {
		opts.StorageKey = DefaultStorageKey
	}
	if opts.Locale == language.Und {
		opts.Locale = places.DefaultLocale
	}
	if opts.WrappedMinTotal <= 0 {
		opts.WrappedMinTotal = places.DefaultWrappedMinTotal
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.WrappedYear == 0 {
		opts.WrappedYear = opts.Now().Year()
	}
	if narrator == nil {
		narrator = narrate.NewTemplateNarrator()
	}
	return &PlaceService{
		repo:     repo,
		narrator: narrator,
		archive:  arch,
		logger:   logger,
		opts:     opts,
		places:   []domain.Place{},
	}
}

// Load reads the saved collection. A missing collection starts from the
// sample data and an unreadable one is logged and replaced by it.
func (s *PlaceService) Load(ctx context.Context) error {
	snap, err := s.repo.Load(ctx, s.opts.StorageKey)
	if err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}

	now := s.opts.Now()
	var loaded []domain.Place
	switch {
	case snap == nil:
		s.logger.Info("no saved collection, starting from sample data")
		loaded, err = seed.SamplePlaces(now, s.opts.NewID)
	default:
		var raw any
		if jerr := json.Unmarshal(snap.Data, &raw); jerr != nil {
			s.logger.Error("saved collection is unreadable, starting from sample data", "error", jerr)
			loaded, err = seed.SamplePlaces(now, s.opts.NewID)
			break
		}
		loaded = places.Restore(raw, now, s.opts.NewID)
	}
	if err != nil {
		return fmt.Errorf("failed to load sample data: %w", err)
	}

	s.mu.Lock()
	s.places = loaded
	s.mu.Unlock()

	s.logger.Info("collection loaded", "places", len(loaded))
	return nil
}

func (s *PlaceService) snapshot() []domain.Place {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePlaces(s.places)
}

func (s *PlaceService) List() []domain.Place {
	return s.snapshot()
}

func (s *PlaceService) Get(id string) (domain.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.places, id)
	if i < 0 {
		return domain.Place{}, ErrPlaceNotFound
	}
	return s.places[i].Clone(), nil
}

// Next returns the id of the place after id in collection order.
func (s *PlaceService) Next(id string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if indexOf(s.places, id) < 0 {
		return "", false, ErrPlaceNotFound
	}
	next, ok := places.NextAfter(s.places, id)
	return next, ok, nil
}

func (s *PlaceService) View(q places.Query) []domain.Place {
	if q.Locale == language.Und {
		q.Locale = s.opts.Locale
	}
	return places.View(s.snapshot(), q)
}

func (s *PlaceService) Cities(search string) []places.CityGroup {
	return places.GroupByCity(s.snapshot(), search, s.opts.Locale)
}

func (s *PlaceService) Progress() places.ProgressReport {
	return places.Progress(s.snapshot())
}

// Wrapped computes the recap for year, or for the configured year when year is 0.
func (s *PlaceService) Wrapped(year int) places.WrappedStats {
	if year == 0 {
		year = s.opts.WrappedYear
	}
	return places.ComputeWrapped(s.snapshot(), places.WrappedOptions{
		Year:     year,
		MinTotal: s.opts.WrappedMinTotal,
		Location: s.opts.Location,
	})
}

func (s *PlaceService) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Total: len(s.places)}
	for _, p := range s.places {
		if p.IsFavorite {
			st.Favorites++
		}
	}
	return st
}

// Narrate tells the recap for year. A failing narrator is logged and the
// built-in copy is returned instead.
func (s *PlaceService) Narrate(ctx context.Context, year int) (*narrate.Story, error) {
	stats := s.Wrapped(year)
	story, err := s.narrator.Narrate(ctx, stats)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("failed to narrate recap: %w", ctx.Err())
		}
		s.logger.Warn("narrator failed, using template copy", "year", stats.Year, "error", err)
		return narrate.Template(stats), nil
	}
	return story, nil
}

func (s *PlaceService) Add(ctx context.Context, np domain.NewPlace) (domain.Place, error) {
	now := s.opts.Now().UnixMilli()
	p := domain.Place{
		ID:           s.opts.NewID(),
		Name:         strings.TrimSpace(np.Name),
		PlaceType:    strings.TrimSpace(np.PlaceType),
		Cuisine:      strings.TrimSpace(np.Cuisine),
		TopItem:      strings.TrimSpace(np.TopItem),
		Price:        np.Price,
		Tags:         cleanTags(np.Tags),
		Notes:        np.Notes,
		City:         strings.TrimSpace(np.City),
		Neighborhood: strings.TrimSpace(np.Neighborhood),
		DateVisited:  strings.TrimSpace(np.DateVisited),
		MapURL:       strings.TrimSpace(np.MapURL),
		WebsiteURL:   strings.TrimSpace(np.WebsiteURL),
		MenuURL:      strings.TrimSpace(np.MenuURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if np.Rating != nil {
		r := *np.Rating
		p.Rating = &r
	}
	if p.Name == "" {
		p.Name = places.UntitledName
	}
	if err := places.ValidatePlace(p); err != nil {
		return domain.Place{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(clonePlaces(s.places), p)
	if err := s.commit(ctx, next); err != nil {
		return domain.Place{}, err
	}
	s.logger.Info("place added", "id", p.ID, "name", p.Name)
	return p.Clone(), nil
}

func (s *PlaceService) Update(ctx context.Context, id string, u domain.PlaceUpdate) (domain.Place, error) {
	return s.update(ctx, id, func(domain.Place) domain.PlaceUpdate { return u })
}

func (s *PlaceService) ToggleFavorite(ctx context.Context, id string) (domain.Place, error) {
	return s.update(ctx, id, func(p domain.Place) domain.PlaceUpdate {
		fav := !p.IsFavorite
		return domain.PlaceUpdate{IsFavorite: &fav}
	})
}

// update applies the change built from the current record in one critical
// section, so the change always sees the record it replaces.
func (s *PlaceService) update(ctx context.Context, id string, build func(domain.Place) domain.PlaceUpdate) (domain.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.places, id)
	if i < 0 {
		return domain.Place{}, ErrPlaceNotFound
	}

	u := build(s.places[i])
	updated := u.Apply(s.places[i], s.opts.Now())
	updated.Name = strings.TrimSpace(updated.Name)
	if updated.Name == "" {
		updated.Name = places.UntitledName
	}
	if u.Tags != nil {
		updated.Tags = cleanTags(updated.Tags)
	}
	if err := places.ValidatePlace(updated); err != nil {
		return domain.Place{}, err
	}

	next := clonePlaces(s.places)
	next[i] = updated
	if err := s.commit(ctx, next); err != nil {
		return domain.Place{}, err
	}
	s.logger.Debug("place updated", "id", id)
	return updated.Clone(), nil
}

func (s *PlaceService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.places, id)
	if i < 0 {
		return ErrPlaceNotFound
	}

	next := make([]domain.Place, 0, len(s.places)-1)
	next = append(next, clonePlaces(s.places[:i])...)
	next = append(next, clonePlaces(s.places[i+1:])...)
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.logger.Info("place deleted", "id", id)
	return nil
}

// Import parses data and applies it with mode. An empty mode is only accepted
// when the collection is empty; otherwise an *ImportDecisionError reports how
// many records are waiting.
func (s *PlaceService) Import(ctx context.Context, data []byte, mode string) (ImportResult, error) {
	var m places.ImportMode
	if mode != "" {
		var err error
		if m, err = places.ParseImportMode(mode); err != nil {
			return ImportResult{}, err
		}
	}

	imported, err := places.ParseImport(data, s.opts.Now(), s.opts.NewID)
	if err != nil {
		return ImportResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if m == "" {
		if len(s.places) > 0 {
			return ImportResult{}, &ImportDecisionError{Pending: len(imported), Current: len(s.places)}
		}
		m = places.ImportReplace
	}

	if m == places.ImportReplace && len(s.places) > 0 {
		if _, err := s.archiveLocked(ctx, "pre-import"); err != nil {
			return ImportResult{}, err
		}
	}

	next, added := places.Merge(s.places, imported, m)
	if err := s.commit(ctx, next); err != nil {
		return ImportResult{}, err
	}

	s.logger.Info("import applied", "mode", m, "imported", len(imported), "added", added, "total", len(next))
	return ImportResult{Added: added, Total: len(next), Mode: m}, nil
}

// Export renders the collection in format and keeps a copy in the archive
// when one is configured. A failed archive copy does not fail the export.
func (s *PlaceService) Export(ctx context.Context, format string) (*Export, error) {
	f, err := exporter.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := exporter.Write(&buf, f, s.snapshot()); err != nil {
		return nil, fmt.Errorf("failed to export places: %w", err)
	}

	out := &Export{
		Filename:    exporter.Filename(s.opts.Now(), f),
		ContentType: f.ContentType(),
		Data:        buf.Bytes(),
	}

	if s.archive != nil {
		key, err := s.archive.Save(ctx, "export", out.ContentType, bytes.NewReader(out.Data))
		if err != nil {
			s.logger.Warn("failed to archive export", "error", err)
		} else {
			out.ArchiveKey = key
		}
	}
	return out, nil
}

// Reset archives the collection, empties it and forgets the saved copy, so
// the next start begins from the sample data again.
func (s *PlaceService) Reset(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.places) > 0 {
		if _, err := s.archiveLocked(ctx, "pre-reset"); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, s.opts.StorageKey); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}
	s.places = []domain.Place{}
	s.logger.Info("collection reset")
	return nil
}

func (s *PlaceService) Archives(ctx context.Context) ([]archive.Entry, error) {
	if s.archive == nil {
		return []archive.Entry{}, nil
	}
	entries, err := s.archive.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}
	return entries, nil
}

func (s *PlaceService) OpenArchive(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if s.archive == nil {
		return nil, "", archive.ErrNotFound
	}
	return s.archive.Get(ctx, key)
}

// DeleteArchive removes a stored snapshot. It needs the same confirmation as
// deleting a place.
func (s *PlaceService) DeleteArchive(ctx context.Context, key string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if s.archive == nil {
		return archive.ErrNotFound
	}
	if err := s.archive.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete archive: %w", err)
	}
	s.logger.Info("archive deleted", "key", key)
	return nil
}

// archiveLocked stores a JSON copy of the current collection. Callers hold s.mu.
func (s *PlaceService) archiveLocked(ctx context.Context, prefix string) (string, error) {
	if s.archive == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := exporter.JSON(&buf, s.places); err != nil {
		return "", fmt.Errorf("failed to archive collection: %w", err)
	}
	key, err := s.archive.Save(ctx, prefix, archive.ContentTypeJSON, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to archive collection: %w", err)
	}
	s.logger.Info("collection archived", "key", key, "places", len(s.places))
	return key, nil
}

// commit persists next and swaps it in. Callers hold s.mu for writing.
func (s *PlaceService) commit(ctx context.Context, next []domain.Place) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	if err := s.repo.Save(ctx, s.opts.StorageKey, data); err != nil {
		s.logger.Error("failed to save collection", "error", err)
		return fmt.Errorf("failed to save collection: %w", err)
	}
	s.places = next
	return nil
}

func indexOf(ps []domain.Place, id string) int {
	for i, p := range ps {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clonePlaces(ps []domain.Place) []domain.Place {
	out := make([]domain.Place, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

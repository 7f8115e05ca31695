package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/timetable/internal/models"
)

const jsonStoreVersion = 1

type jsonDocument struct {
	Version int                     `json:"version"`
	Events  map[string]models.Event `json:"events"`
}

// JSONStore keeps all events in a single JSON file, rewritten on every change
type JSONStore struct {
	path string
	doc  *jsonDocument
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &jsonDocument{
		Version: jsonStoreVersion,
		Events:  make(map[string]models.Event),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &jsonDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version %d is newer than supported version %d", doc.Version, jsonStoreVersion)
	}
	if doc.Events == nil {
		doc.Events = make(map[string]models.Event)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// write a sibling file, then swap it in
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetEvent(id string) (models.Event, error) {
	if s.doc == nil {
		return models.Event{}, ErrNotLoaded
	}
	e, ok := s.doc.Events[id]
	if !ok {
		return models.Event{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

func (s *JSONStore) GetAllEvents() ([]models.Event, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	events := make([]models.Event, 0, len(s.doc.Events))
	for _, e := range s.doc.Events {
		events = append(events, e)
	}
	sortEvents(events)
	return events, nil
}

func (s *JSONStore) SaveEvents(events ...*models.Event) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	assignIDs(events)
	for _, e := range events {
		if e != nil {
			s.doc.Events[e.ID] = *e
		}
	}
	return s.save()
}

func (s *JSONStore) DeleteEvents(ids ...string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	for _, id := range ids {
		delete(s.doc.Events, id)
	}
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

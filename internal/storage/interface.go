package storage

import "github.com/julianstephens/timetable/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Events
	GetEvent(id string) (models.Event, error)
	GetAllEvents() ([]models.Event, error)
	SaveEvents(events ...*models.Event) error
	DeleteEvents(ids ...string) error

	// Utils
	GetConfigPath() string
}

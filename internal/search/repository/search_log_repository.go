package repository

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"meddigest-backend/internal/search/domain"
)

// ErrNotFound reports that no archived entry exists for the requested id.
var ErrNotFound = errors.New("search log entry not found")

// SearchLogRepository is the append-only archive of past queries and their
// synthesized summaries.
type SearchLogRepository interface {
	// Append persists a new entry, assigning its surrogate id. A failed
	// write leaves no row behind; the caller treats failure as non-fatal.
	Append(entry *domain.SearchLog) error
	// Recent returns up to limit entries, most recent first. Read failures
	// never propagate: the fallback policy is to log and return an empty
	// slice so the rendering path always has something to show.
	Recent(limit int) []domain.SearchLog
	// Get returns the entry with the given id, or ErrNotFound.
	Get(id uint) (*domain.SearchLog, error)
}

// searchLogRepository implements SearchLogRepository using GORM
type searchLogRepository struct {
	db *gorm.DB
}

// NewSearchLogRepository creates a new instance of searchLogRepository
func NewSearchLogRepository(db *gorm.DB) SearchLogRepository {
	return &searchLogRepository{db: db}
}

func (r *searchLogRepository) Append(entry *domain.SearchLog) error {
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}
	if entry.Persona == "" {
		entry.Persona = string(domain.PersonaClinician)
	}
	if len(entry.Query) > domain.MaxQueryLength {
		entry.Query = entry.Query[:domain.MaxQueryLength]
	}
	return r.db.Create(entry).Error
}

func (r *searchLogRepository) Recent(limit int) []domain.SearchLog {
	var entries []domain.SearchLog
	err := r.db.Order("date DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		log.Printf("[WARN] history read failed, showing empty list: %v", err)
		return []domain.SearchLog{}
	}
	return entries
}

func (r *searchLogRepository) Get(id uint) (*domain.SearchLog, error) {
	var entry domain.SearchLog
	err := r.db.First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

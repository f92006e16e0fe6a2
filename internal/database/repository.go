package database

import (
	"time"

	"titlewatch/internal/models"

	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// Repository handles all database operations for observations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CreateObservation inserts a new observation into the database
func (r *Repository) CreateObservation(obs *models.Observation) error {
	result := r.db.Create(obs)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert observation")
	}
	return nil
}

// GetObservationsSince retrieves observations for keyword since a given
// time, oldest first. An empty keyword matches all keywords.
func (r *Repository) GetObservationsSince(keyword string, since time.Time) ([]*models.Observation, error) {
	var observations []*models.Observation
	query := r.db.Where("timestamp >= ?", since)
	if keyword != "" {
		query = query.Where("keyword = ?", keyword)
	}

	result := query.Order("timestamp ASC").Find(&observations)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query observations")
	}

	return observations, nil
}

// GetLatestBefore returns the most recent observation for keyword strictly
// before t, or nil
func (r *Repository) GetLatestBefore(keyword string, t time.Time) (*models.Observation, error) {
	var obs models.Observation
	result := r.db.Where("keyword = ? AND timestamp < ?", keyword, t).Order("timestamp DESC").First(&obs)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get previous observation")
	}
	return &obs, nil
}

// GetLatest retrieves the most recent observation
func (r *Repository) GetLatest() (*models.Observation, error) {
	var obs models.Observation
	result := r.db.Order("timestamp DESC").First(&obs)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get latest observation")
	}
	return &obs, nil
}

// DeleteOldObservations deletes observations older than a specified date (soft delete)
func (r *Repository) DeleteOldObservations(before time.Time) (int64, error) {
	result := r.db.Where("timestamp < ?", before).Delete(&models.Observation{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete old observations")
	}
	return result.RowsAffected, nil
}

// CreateErrorLog inserts a new error log into the database
func (r *Repository) CreateErrorLog(errorLog *models.ErrorLog) error {
	result := r.db.Create(errorLog)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}

// CountErrorsSince counts error logs recorded since a given time
func (r *Repository) CountErrorsSince(since time.Time) (int64, error) {
	var count int64
	result := r.db.Model(&models.ErrorLog{}).Where("timestamp >= ?", since).Count(&count)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to count error logs")
	}
	return count, nil
}

// Clear removes all observations and error logs from the database
func (r *Repository) Clear() error {
	if result := r.db.Exec("DELETE FROM observations"); result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear observations")
	}
	if result := r.db.Exec("DELETE FROM error_logs"); result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear error logs")
	}
	return nil
}

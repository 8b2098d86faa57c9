package reminder

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/medcare-api/internal/models"
)

// GormMarkerStore keeps markers in Postgres when Redis is not configured.
type GormMarkerStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormMarkerStore(db *gorm.DB) *GormMarkerStore {
	return &GormMarkerStore{db: db, now: time.Now}
}

func (s *GormMarkerStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	now := s.now().UTC()

	var claimed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("marker_key = ? AND expires_at < ?", key, now).
			Delete(&models.ReminderMarker{}).Error; err != nil {
			return err
		}

		res := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "marker_key"}},
				DoNothing: true,
			}).
			Create(&models.ReminderMarker{
				Key:       key,
				ExpiresAt: now.Add(ttl),
			})
		if res.Error != nil {
			return res.Error
		}

		claimed = res.RowsAffected == 1
		return nil
	})

	return claimed, err
}

func (s *GormMarkerStore) Release(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("marker_key = ?", key).
		Delete(&models.ReminderMarker{}).Error
}

// Purge removes expired markers.
func (s *GormMarkerStore) Purge(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at < ?", s.now().UTC()).
		Delete(&models.ReminderMarker{})
	return res.RowsAffected, res.Error
}

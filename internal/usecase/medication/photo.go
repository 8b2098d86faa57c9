package medication

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/medcare-api/internal/audit"
	domain "github.com/BruksfildServices01/medcare-api/internal/domain/medication"
	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/storage"
)

type UploadPhoto struct {
	repo  domain.Repository
	store storage.ObjectStore
	audit *audit.Dispatcher
}

func NewUploadPhoto(
	repo domain.Repository,
	store storage.ObjectStore,
	audit *audit.Dispatcher,
) *UploadPhoto {
	return &UploadPhoto{
		repo:  repo,
		store: store,
		audit: audit,
	}
}

func photoKey(userID, medicationID uint) string {
	return fmt.Sprintf("medications/%d/%d/%s.webp", userID, medicationID, uuid.NewString())
}

// Execute re-encodes the upload as WebP, stores it and points the
// medication at the new object. The previous object is removed best
// effort.
func (uc *UploadPhoto) Execute(
	ctx context.Context,
	userID uint,
	medicationID uint,
	file io.Reader,
) (*models.Medication, error) {

	if uc.store == nil {
		return nil, httperr.ErrBusiness("storage_disabled")
	}

	med, err := uc.repo.GetMedicationForUser(ctx, medicationID, userID)
	if err != nil {
		return nil, notFound(err)
	}

	data, err := storage.ToWebP(file)
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return nil, httperr.ErrBusiness("image_too_large")
	case errors.Is(err, storage.ErrNotAnImage):
		return nil, httperr.ErrBusiness("invalid_image")
	case err != nil:
		return nil, err
	}

	key := photoKey(userID, med.ID)
	if err := uc.store.Put(ctx, key, storage.WebPMime, data); err != nil {
		return nil, err
	}

	previous := med.PhotoKey
	med.PhotoKey = key
	if err := uc.repo.UpdateMedication(ctx, med); err != nil {
		return nil, err
	}

	if previous != "" {
		if err := uc.store.Delete(ctx, previous); err != nil {
			log.Printf("medication %d: old photo not removed: %v", med.ID, err)
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "medication_photo_updated",
		Entity:   "medication",
		EntityID: &med.ID,
	})

	return med, nil
}

package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"truckops/internal/models"
)

// DriverStore is the persistence collaborator for driver records. Lookups
// return models.ErrDriverNotFound when no row matches; duplicate emails
// surface as models.ErrEmailTaken. Everything else is an opaque storage
// error for the caller.
type DriverStore interface {
	FindAll(ctx context.Context) ([]models.Driver, error)
	FindByID(ctx context.Context, id uint) (*models.Driver, error)
	FindByEmail(ctx context.Context, email string) (*models.Driver, error)
	Create(ctx context.Context, d *models.Driver) error
	Update(ctx context.Context, d *models.Driver) error
	Delete(ctx context.Context, id uint) error
}

type GormDriverStore struct {
	db *gorm.DB
}

func NewGormDriverStore(db *gorm.DB) *GormDriverStore {
	return &GormDriverStore{db: db}
}

func (s *GormDriverStore) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("EmergencyContacts").
		Preload("Endorsements").
		Preload("Documents").
		Preload("HOS")
}

func (s *GormDriverStore) FindAll(ctx context.Context) ([]models.Driver, error) {
	var drivers []models.Driver
	if err := s.preloaded(ctx).Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (s *GormDriverStore) FindByID(ctx context.Context, id uint) (*models.Driver, error) {
	var driver models.Driver
	if err := s.preloaded(ctx).First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrDriverNotFound
		}
		return nil, err
	}
	return &driver, nil
}

func (s *GormDriverStore) FindByEmail(ctx context.Context, email string) (*models.Driver, error) {
	var driver models.Driver
	if err := s.preloaded(ctx).Where("email = ?", email).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrDriverNotFound
		}
		return nil, err
	}
	return &driver, nil
}

func (s *GormDriverStore) Create(ctx context.Context, d *models.Driver) error {
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrEmailTaken
		}
		return err
	}
	return nil
}

// Update writes the driver row and replaces its owned sub-collections in a
// single transaction: rows dropped from the in-memory record are deleted,
// everything still present is upserted alongside the driver itself.
func (s *GormDriverStore) Update(ctx context.Context, d *models.Driver) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := pruneOwned(tx, &models.EmergencyContact{}, d.ID, contactIDs(d.EmergencyContacts)); err != nil {
			return err
		}
		if err := pruneOwned(tx, &models.Endorsement{}, d.ID, endorsementIDs(d.Endorsements)); err != nil {
			return err
		}
		if err := pruneOwned(tx, &models.Document{}, d.ID, documentIDs(d.Documents)); err != nil {
			return err
		}
		err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(d).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrEmailTaken
		}
		return err
	})
}

// Delete hard-deletes the driver row; the database cascades to contacts,
// endorsements, documents and the HOS counter.
func (s *GormDriverStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Unscoped().Delete(&models.Driver{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrDriverNotFound
	}
	return nil
}

// pruneOwned hard-deletes owned rows that fell out of the kept id set.
func pruneOwned(tx *gorm.DB, model interface{}, driverID uint, kept []uint) error {
	q := tx.Unscoped().Where("driver_id = ?", driverID)
	if len(kept) > 0 {
		q = q.Where("id NOT IN ?", kept)
	}
	return q.Delete(model).Error
}

func contactIDs(cs []models.EmergencyContact) []uint {
	ids := make([]uint, 0, len(cs))
	for _, c := range cs {
		if c.ID != 0 {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func endorsementIDs(es []models.Endorsement) []uint {
	ids := make([]uint, 0, len(es))
	for _, e := range es {
		if e.ID != 0 {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func documentIDs(ds []models.Document) []uint {
	ids := make([]uint, 0, len(ds))
	for _, d := range ds {
		if d.ID != 0 {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the gorm-backed record store. Every collection is addressed
// through its model type, so the same four calls serve menu, orders, tables,
// staff, customers and reservations alike.
type Repository struct {
	db *gorm.DB
}

// NewRepository wraps db. A nil db falls back to the package connection.
func NewRepository(db *gorm.DB) *Repository {
	if db == nil {
		db = DB
	}
	return &Repository{db: db}
}

// SelectAll loads every row of the collection dest points to (e.g. *[]models.Order).
func (r *Repository) SelectAll(ctx context.Context, dest any) error {
	return r.db.WithContext(ctx).Find(dest).Error
}

// Insert creates one record or a slice of records. Conflicting primary keys
// overwrite the stored row so a retried insert lands once.
func (r *Repository) Insert(ctx context.Context, records any) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(records).Error
}

// Update writes the named columns of record, matched by primary key. With no
// columns every field is written, zero values included. Matching no row is an
// error so the write queue retries an update that overtook its insert.
func (r *Repository) Update(ctx context.Context, record any, columns ...string) error {
	tx := r.db.WithContext(ctx).Model(record)
	if len(columns) == 0 {
		tx = tx.Select("*")
	} else {
		tx = tx.Select(columns)
	}
	res := tx.Updates(record)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes record by primary key.
func (r *Repository) Delete(ctx context.Context, record any) error {
	return r.db.WithContext(ctx).Delete(record).Error
}

// DeleteAll empties the collection of model (e.g. &models.Order{}).
func (r *Repository) DeleteAll(ctx context.Context, model any) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(model).Error
}

package repository

import (
	"encoding/json"
	"errors"

	"github.com/anst-dev/ChotTienBanHang/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SlotStore persists named snapshots of in-memory state. Load reports
// whether the slot existed; a missing slot is not an error.
type SlotStore interface {
	Load(name string, out interface{}) (bool, error)
	Save(name string, v interface{}) error
}

type slotRepo struct {
	db *gorm.DB
}

func NewSlotRepo(db *gorm.DB) SlotStore {
	return &slotRepo{db}
}

func (r *slotRepo) Load(name string, out interface{}) (bool, error) {
	var slot model.Slot
	err := r.db.First(&slot, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(slot.Data), out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *slotRepo) Save(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	slot := model.Slot{Name: name, Data: string(data)}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&slot).Error
}

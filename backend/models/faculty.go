package models

import "time"

type Faculty struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Username        string    `gorm:"uniqueIndex;not null" json:"username"`
	Name            string    `gorm:"not null" json:"name"`
	Password        string    `gorm:"not null" json:"-"`
	AssignedBatches []*Batch  `gorm:"many2many:batch_faculties" json:"assigned_batches"`
	CreatedAt       time.Time `json:"date"`
}

// HasBatch reports whether the batch is in this faculty's assigned list.
// Callers must have preloaded AssignedBatches.
func (f *Faculty) HasBatch(batchID uint) bool {
	for _, b := range f.AssignedBatches {
		if b.ID == batchID {
			return true
		}
	}
	return false
}

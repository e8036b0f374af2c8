package models

import "time"

// Batch is a cohort of students sharing faculty assignments and tests.
// The batch_faculties join table is shared with Faculty.AssignedBatches,
// so the Batch<->Faculty link is a single row and stays symmetric.
type Batch struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	Name      string     `gorm:"uniqueIndex;not null" json:"name"`
	Students  []Student  `gorm:"foreignKey:BatchID" json:"student_list"`
	Faculties []*Faculty `gorm:"many2many:batch_faculties" json:"faculties"`
	CreatedAt time.Time  `json:"date"`
}

// HasFaculty reports whether the faculty is in this batch's faculty list.
// Callers must have preloaded Faculties.
func (b *Batch) HasFaculty(facultyID uint) bool {
	for _, f := range b.Faculties {
		if f.ID == facultyID {
			return true
		}
	}
	return false
}

package models

import "time"

type Student struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Username      string    `gorm:"uniqueIndex;not null" json:"username"`
	Name          string    `gorm:"not null" json:"name"`
	Password      string    `gorm:"not null" json:"-"`
	BatchID       *uint     `json:"batch_id"`
	AssignedTests []*Test   `gorm:"many2many:student_assigned_tests" json:"assigned_tests"`
	Scores        []Score   `json:"scores"`
	CreatedAt     time.Time `json:"date"`
}

// Score is a manually recorded result for one (student, test) pair.
// Evaluation of a submission does not create one; faculties record
// scores separately.
type Score struct {
	ID        uint `gorm:"primarykey" json:"-"`
	StudentID uint `gorm:"uniqueIndex:idx_student_test" json:"-"`
	TestID    uint `gorm:"uniqueIndex:idx_student_test" json:"test_id"`
	Score     int  `json:"score"`
}

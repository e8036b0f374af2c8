package models

import "time"

// Submission is one student's answer set for one test. The composite
// unique index backs the one-submission-per-(test, student) rule; the
// controller still pre-checks to return a 400 instead of a raw
// constraint error.
type Submission struct {
	ID           uint              `gorm:"primarykey" json:"id"`
	TestID       uint              `gorm:"not null;uniqueIndex:idx_test_student" json:"test_id"`
	StudentID    uint              `gorm:"not null;uniqueIndex:idx_test_student" json:"student_id"`
	FacultyID    uint              `gorm:"not null" json:"faculty_id"`
	IsEvaluated  bool              `gorm:"default:false" json:"isEvaluated"`
	SubmittedAns []SubmittedAnswer `json:"submitted_ans"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type SubmittedAnswer struct {
	ID           uint `gorm:"primarykey" json:"-"`
	SubmissionID uint `json:"-"`
	QsnNo        int  `gorm:"not null" json:"qsn_no"`
	Ans          int  `gorm:"not null" json:"ans"` // option index, 1..4
}

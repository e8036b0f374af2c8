package models

import "time"

// Test lifecycle: draft -> confirmed (students can see it) -> completed
// (dismissed). Transitions are one-directional; nothing un-confirms or
// un-dismisses a test.
type Test struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	FacultyID   uint           `gorm:"not null" json:"faculty_id"`
	BatchID     uint           `gorm:"not null" json:"batch_id"`
	TestDetails TestDetails    `gorm:"embedded;embeddedPrefix:test_" json:"test_details"`
	Questions   []TestQuestion `json:"questions"`
	Answers     []TestAnswer   `json:"answers"`
	SubmittedBy []uint         `gorm:"serializer:json" json:"submitted_by"`
	IsConfirmed bool           `gorm:"default:false" json:"isConfirmed"`
	IsCompleted bool           `gorm:"default:false" json:"isCompleted"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type TestDetails struct {
	Name            string     `gorm:"not null" json:"name"`
	Marks           int        `gorm:"not null" json:"marks"`
	Subject         string     `gorm:"not null" json:"subject"`
	TestTimeHours   int        `json:"testTimeHours"`
	TestTimeMinutes int        `json:"testTimeMinutes"`
	TestDate        *time.Time `json:"testDate"`
	TestStartTime   *time.Time `json:"testStartTime"`
	TestEndTime     *time.Time `json:"testEndTime"`
}

// TestQuestion is addressed by QsnNo, not by list position; question
// numbers need not be contiguous.
type TestQuestion struct {
	ID       uint              `gorm:"primarykey" json:"-"`
	TestID   uint              `json:"-"`
	QsnNo    int               `gorm:"not null" json:"qsn_no"`
	Question string            `gorm:"not null" json:"question"`
	Options  map[string]string `gorm:"serializer:json" json:"options"`
}

type TestAnswer struct {
	ID     uint `gorm:"primarykey" json:"-"`
	TestID uint `json:"-"`
	QsnNo  int  `gorm:"not null" json:"qsn_no"`
	Ans    int  `gorm:"not null" json:"ans"` // option index, 1..4
}

// StudentTestView is the read projection served to students: the answer
// key is absent from the type, so it can never leak through marshalling.
type StudentTestView struct {
	ID          uint           `json:"id"`
	FacultyID   uint           `json:"faculty_id"`
	BatchID     uint           `json:"batch_id"`
	TestDetails TestDetails    `json:"test_details"`
	Questions   []TestQuestion `json:"questions"`
	SubmittedBy []uint         `json:"submitted_by"`
	IsConfirmed bool           `json:"isConfirmed"`
	IsCompleted bool           `json:"isCompleted"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (t *Test) ForStudent() StudentTestView {
	return StudentTestView{
		ID:          t.ID,
		FacultyID:   t.FacultyID,
		BatchID:     t.BatchID,
		TestDetails: t.TestDetails,
		Questions:   t.Questions,
		SubmittedBy: t.SubmittedBy,
		IsConfirmed: t.IsConfirmed,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

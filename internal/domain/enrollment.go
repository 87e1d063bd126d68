package domain

import "time"

// Enrollment is one (student, course) ownership fact. Rows are only ever
// written by a completed order placement.
type Enrollment struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	StudentID uint64    `json:"studentId" gorm:"not null;uniqueIndex:idx_student_course"`
	CourseID  uint64    `json:"courseId" gorm:"not null;uniqueIndex:idx_student_course"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

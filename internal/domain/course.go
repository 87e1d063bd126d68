package domain

import "time"

// Course is the capacity-bearing entity. EnrolledCount and IsOpen are only
// ever mutated through the conditional updates in the course repository, so
// the invariant 0 <= EnrolledCount <= MaxSeats holds under concurrent
// placements. ManuallyClosed records a teacher-driven close; a course closed
// only by reaching capacity reopens when a seat is released, a manually
// closed one does not.
type Course struct {
	ID             uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string    `json:"name" gorm:"not null"`
	Description    string    `json:"description" gorm:"size:1000"`
	Price          int64     `json:"price" gorm:"not null"`
	MaxSeats       int       `json:"maxSeats" gorm:"not null"`
	EnrolledCount  int       `json:"enrolledCount" gorm:"not null;default:0"`
	IsOpen         bool      `json:"isOpen" gorm:"not null;default:true"`
	ManuallyClosed bool      `json:"-" gorm:"not null;default:false"`
	TeacherID      uint64    `json:"teacherId" gorm:"not null;index"`
	CreatedAt      time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// CanEnroll is the advisory availability check used when browsing the
// catalog or adding to a cart. Seats are only consumed at order placement.
func (c *Course) CanEnroll() bool {
	return c.IsOpen && c.EnrolledCount < c.MaxSeats
}

package domain

import "time"

// Cart is a student's pending course selection. TotalPrice is a cache over
// the line courses' current prices, recomputed on every mutation.
type Cart struct {
	ID         uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	StudentID  uint64     `json:"studentId" gorm:"uniqueIndex;not null"`
	TotalPrice int64      `json:"totalPrice" gorm:"not null;default:0"`
	Lines      []CartLine `json:"lines" gorm:"foreignKey:CartID"`
	CreatedAt  time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

type CartLine struct {
	ID       uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	CartID   uint64 `json:"cartId" gorm:"not null;uniqueIndex:idx_cart_course"`
	CourseID uint64 `json:"courseId" gorm:"not null;uniqueIndex:idx_cart_course"`
}

func (c *Cart) ContainsCourse(courseID uint64) bool {
	for _, line := range c.Lines {
		if line.CourseID == courseID {
			return true
		}
	}
	return false
}

func (c *Cart) CourseIDs() []uint64 {
	ids := make([]uint64, 0, len(c.Lines))
	for _, line := range c.Lines {
		ids = append(ids, line.CourseID)
	}
	return ids
}

// CartView is the read shape handed to the HTTP layer: cart lines joined
// with the current course name and price.
type CartView struct {
	ID         uint64         `json:"id"`
	StudentID  uint64         `json:"studentId"`
	TotalPrice int64          `json:"totalPrice"`
	Lines      []CartLineView `json:"lines"`
}

type CartLineView struct {
	CourseID   uint64 `json:"courseId"`
	CourseName string `json:"courseName"`
	Price      int64  `json:"price"`
}

package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRefunded  OrderStatus = "REFUNDED"
)

// Order is the immutable record of a completed purchase. Lines and
// TotalPrice are frozen at placement time; only Status may change
// afterwards, through a compensating billing flow outside this service.
type Order struct {
	ID         uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Code       string      `json:"orderCode" gorm:"uniqueIndex;not null"`
	StudentID  uint64      `json:"studentId" gorm:"not null;index"`
	TotalPrice int64       `json:"totalPrice" gorm:"not null"`
	Status     OrderStatus `json:"status" gorm:"type:enum('PENDING','COMPLETED','CANCELLED','REFUNDED');not null"`
	Lines      []OrderLine `json:"lines" gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time   `json:"createdAt" gorm:"autoCreateTime"`
}

// OrderLine records the course purchased and the price paid at purchase
// time, decoupled from the course's current price.
type OrderLine struct {
	ID       uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID  uint64 `json:"orderId" gorm:"not null;index"`
	CourseID uint64 `json:"courseId" gorm:"not null"`
	Price    int64  `json:"price" gorm:"not null"`
}

// NewOrderCode returns a fresh candidate order code. Codes are random
// high-entropy tokens; the unique index on orders.code plus a bounded
// retry in the order service covers the collision case.
func NewOrderCode() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

package domain

import "time"

// OrderCompletedEvent is published after a placement commits. It is a
// best-effort side channel for downstream consumers (mail, analytics),
// never part of the fulfillment transaction itself.
type OrderCompletedEvent struct {
	OrderID    uint64    `json:"orderId"`
	OrderCode  string    `json:"orderCode"`
	StudentID  uint64    `json:"studentId"`
	CourseIDs  []uint64  `json:"courseIds"`
	TotalPrice int64     `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
}

package http

import "github.com/atfskmn/-Course-Management-Api/internal/domain"

type RegisterRequest struct {
	Username string      `json:"username" binding:"required"`
	Password string      `json:"password" binding:"required,min=6"`
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Role     domain.Role `json:"role" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CourseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	MaxSeats    int    `json:"maxSeats" binding:"required,min=1"`
}

type AvailabilityRequest struct {
	Open *bool `json:"open" binding:"required"`
}

type ReplaceCartRequest struct {
	CourseIDs []uint64 `json:"courseIds" binding:"required"`
}

package models

import (
	"time"
)

type User struct {
	ID        string    `db:"id" json:"id"`
	Firstname string    `db:"firstname" json:"firstname"`
	Lastname  string    `db:"lastname" json:"lastname"`
	Age       int       `db:"age" json:"age"`
	Gender    string    `db:"gender" json:"gender"`
	Phone     string    `db:"phone" json:"phone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateUserRequest struct {
	Firstname string `json:"firstname" validate:"required,min=2,max=100"`
	Lastname  string `json:"lastname" validate:"required,min=1,max=100"`
	Age       int    `json:"age" validate:"required,gte=18,lte=100"`
	Gender    string `json:"gender" validate:"required,oneof=male female other"`
	Phone     string `json:"phone" validate:"required,min=10,max=15"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
}

// DisplayName is the full name shown on rides and requests.
func (u *User) DisplayName() string {
	return u.Firstname + " " + u.Lastname
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Age:       u.Age,
		Gender:    u.Gender,
		Phone:     u.Phone,
	}
}

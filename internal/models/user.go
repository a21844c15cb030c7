package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email" validate:"required,email"`
	Password  string    `bson:"password,omitempty" json:"-"`
	Role      string    `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// WithoutPassword returns a copy of the user safe to hand back to clients.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}

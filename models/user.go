package models

import "time"

type User struct {
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	Contact   string    `json:"contact,omitempty" bson:"contact,omitempty"`
	Gender    string    `json:"gender,omitempty" bson:"gender,omitempty"` // male, female, others
	College   string    `json:"college,omitempty" bson:"college,omitempty"`
	Role      []string  `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdat"`
	LastLogin time.Time `json:"lastLogin,omitempty" bson:"last_login,omitempty"`
}

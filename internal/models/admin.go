package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleSuperAdmin = "Super Admin"
	RoleAdmin      = "Admin"
	RoleModerator  = "Moderator"
)

type Admin struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	AdminID   string        `bson:"Admin_id" json:"Admin_id"`
	Username  string        `bson:"Username" json:"Username"`
	Password  string        `bson:"Password" json:"-"`
	Role      string        `bson:"Role" json:"Role"`
	Email     string        `bson:"Email,omitempty" json:"Email,omitempty"`
	CreatedAt time.Time     `bson:"Created_at" json:"Created_at"`
	UpdatedAt time.Time     `bson:"Updated_at" json:"Updated_at"`
	LastLogin *time.Time    `bson:"Last_login,omitempty" json:"Last_login,omitempty"`
}

package dto

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"alumni-directory/internal/models"
)

type AdminInput struct {
	Username string `json:"Username" validate:"required"`
	Password string `json:"Password" validate:"required"`
	Role     string `json:"Role,omitempty" validate:"omitempty,admin_role"`
	Email    string `json:"Email,omitempty" validate:"omitempty,email"`
}

// Model defaults Role to Admin. Password is left for the caller to hash.
func (in AdminInput) Model() *models.Admin {
	role := in.Role
	if role == "" {
		role = models.RoleAdmin
	}
	return &models.Admin{
		Username: strings.TrimSpace(in.Username),
		Role:     role,
		Email:    NormalizeEmail(in.Email),
	}
}

type AdminUpdateInput struct {
	Username *string `json:"Username,omitempty"`
	Password *string `json:"Password,omitempty"`
	Role     *string `json:"Role,omitempty" validate:"omitempty,admin_role"`
	Email    *string `json:"Email,omitempty" validate:"omitempty,email"`
}

func (in AdminUpdateInput) Set() bson.M {
	set := bson.M{}
	if in.Username != nil {
		set["Username"] = strings.TrimSpace(*in.Username)
	}
	put(set, "Role", in.Role)
	if in.Email != nil {
		set["Email"] = NormalizeEmail(*in.Email)
	}
	return set
}

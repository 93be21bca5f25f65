package transport

import (
	"net/mail"

	"github.com/Skotchmaster/product_catalog/internal/models"
)

const minPasswordLen = 8

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate returns one message per failed field, empty when the request is fine.
func (r *RegisterRequest) Validate() []string {
	var msgs []string
	if r.Email == "" {
		msgs = append(msgs, "email must not be empty")
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		msgs = append(msgs, "email must be a valid email address")
	}
	if len(r.Password) < minPasswordLen {
		msgs = append(msgs, "password must be at least 8 characters")
	}
	if r.Role != "" && r.Role != models.RoleAdmin && r.Role != models.RoleUser {
		msgs = append(msgs, "role must be one of: admin, user")
	}
	return msgs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() []string {
	var msgs []string
	if r.Email == "" {
		msgs = append(msgs, "email must not be empty")
	}
	if r.Password == "" {
		msgs = append(msgs, "password must not be empty")
	}
	return msgs
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
}

func (r *CreateProductRequest) Validate() []string {
	var msgs []string
	if r.Name == "" {
		msgs = append(msgs, "name must not be empty")
	}
	if r.Price == nil {
		msgs = append(msgs, "price must not be empty")
	} else if *r.Price < 0 {
		msgs = append(msgs, "price must not be negative")
	}
	if r.Stock != nil && *r.Stock < 0 {
		msgs = append(msgs, "stock must not be negative")
	}
	return msgs
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
}

func (r *UpdateProductRequest) Validate() []string {
	var msgs []string
	if r.Name != nil && *r.Name == "" {
		msgs = append(msgs, "name must not be empty")
	}
	if r.Price != nil && *r.Price < 0 {
		msgs = append(msgs, "price must not be negative")
	}
	if r.Stock != nil && *r.Stock < 0 {
		msgs = append(msgs, "stock must not be negative")
	}
	return msgs
}

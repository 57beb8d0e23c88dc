package dto

// CreateUserRequest represents user creation data. The stored role is
// always "admin" regardless of input.
type CreateUserRequest struct {
	FirstNames string  `json:"firstNames" binding:"required"`
	LastName   string  `json:"lastName" binding:"required"`
	Phone      *string `json:"phone,omitempty"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest represents a partial user update. Nil fields are left
// untouched; a present password is re-hashed before storage.
type UpdateUserRequest struct {
	FirstNames *string `json:"firstNames,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	Password   *string `json:"password,omitempty" binding:"omitempty,min=8"`
}

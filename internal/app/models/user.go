package models

// User defines the platform user model based on the 'users' table.
// Users own the student associations created through spreadsheet imports.
type User struct {
	ID         int64   `json:"id" db:"id" example:"1"`                           // Unique identifier for the user
	FirstNames string  `json:"firstNames" db:"first_names" example:"Ana Maria"`  // User's given names
	LastName   string  `json:"lastName" db:"last_name" example:"Rojas"`          // User's last name
	Phone      *string `json:"phone,omitempty" db:"phone" example:"3001234567"`  // Contact phone (nullable)
	Email      string  `json:"email" db:"email" example:"ana.rojas@hare.edu.co"` // User's email address (unique, login name)
	Password   string  `json:"-" db:"password"`                                  // Bcrypt password hash (excluded from JSON)
	Role       string  `json:"role" db:"role" example:"admin"`                   // User's role
}

// RoleAdmin is the only role the system currently assigns.
const RoleAdmin = "admin"

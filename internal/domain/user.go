package domain

// User is the single entity of the system: one row in the users table.
// The ID is issued at creation time and never changes; Email and Password
// are never touched by any exposed mutation.
type User struct {
	ID       string
	Username string
	Email    string
	Password string
}

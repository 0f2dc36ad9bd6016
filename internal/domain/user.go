package domain

// User is a customer account. Credentials live with the auth collaborator;
// the core only reads identity fields.
type User struct {
	ID    string
	Name  string
	Email string
}

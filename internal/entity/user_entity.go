package entity

// AuthUser is the verified identity extracted from the provider's ID token.
type AuthUser struct {
	Email    string
	FullName string
}

package entity

import "strings"

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash once the user is registered; the plaintext
// never reaches the repository layer.
type User struct {
	ID            string `json:"id"`
	Nom           string `json:"nom"`
	Prenom        string `json:"prenom"`
	Email         string `json:"email"`
	Telephone     string `json:"telephone"`
	DateNaissance string `json:"dateNaissance"`
	GrpSang       string `json:"grpSang"`
	Password      string `json:"-"`
	Role          string `json:"role"`
}

// HasRole compares the free-form role string case-insensitively.
func (u *User) HasRole(role string) bool {
	return strings.EqualFold(u.Role, role)
}

// Projection is the reduced view returned after login. It never carries
// the password hash.
type Projection struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Role   string `json:"role"`
}

// Project builds the login projection for the user.
func (u *User) Project() Projection {
	return Projection{ID: u.ID, Email: u.Email, Nom: u.Nom, Prenom: u.Prenom, Role: u.Role}
}

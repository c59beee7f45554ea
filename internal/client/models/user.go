// Package models defines the client-side views of backend-owned entities.
// None of them is authoritative; they are transient copies of the last
// response.
package models

// User is the identity part of a session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the client-held proof of authentication plus cached identity.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

package domain

// UserAccount is a registered guest. Email is the unique key and is always
// stored normalized. Password holds a bcrypt hash, never the plain text.
type UserAccount struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the identity of the guest signed in to this client.
// At most one session exists at a time.
type Session struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Package models defines the backend documents the client transports. All
// records are server-owned; the client validates and displays them but never
// computes balances, stock or redemption codes locally.
package models

// User is the profile document returned by GET /user/{id}. JSON field names
// follow the backend schema (including its historical spellings).
type User struct {
	ID               string            `json:"_id"`
	Email            string            `json:"email"`
	CPF              string            `json:"cpf"`
	Username         string            `json:"username"`
	Points           int               `json:"points"`
	MetalDiscarded   int               `json:"metalDiscarted"`
	PlasticDiscarded int               `json:"plasticDiscarted"`
	IsActive         bool              `json:"isActive"`
	Redeemed         []RedeemedProduct `json:"redeemed"`
}

// UserUpdate is a partial update for PUT /user/{id}. Nil fields are omitted
// so the backend only touches what the user edited.
type UserUpdate struct {
	Email    *string            `json:"email,omitempty"`
	Username *string            `json:"username,omitempty"`
	Password *string            `json:"password,omitempty"`
	Redeemed *[]RedeemedProduct `json:"redeemed,omitempty"`
}

// Credentials is the body of POST /user/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of POST /user. CPF carries digits only.
type Registration struct {
	Email    string `json:"email"`
	CPF      string `json:"cpf"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the locally persisted identity: the signed token and the user
// id decoded from its claims payload.
type Session struct {
	Token  string
	UserID string
}

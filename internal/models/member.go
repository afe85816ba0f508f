package models

// MinPasswordLength is the minimum accepted length for a raw password.
const MinPasswordLength = 4

type Member struct {
	Entity
	Username       string `json:"username" db:"username"`
	HashedPassword string `json:"-" db:"password_hash"`
}

// NewMember builds a registration candidate. The password is expected to be
// hashed by the service before the member is persisted.
func NewMember(username, hashedPassword string) *Member {
	return &Member{
		Entity:         NewEntity(),
		Username:       username,
		HashedPassword: hashedPassword,
	}
}

package models

// Board is a named category of posts, looked up by its short unique code
// (e.g. "male"). Boards are created by the startup seeder and are not
// updated afterwards.
type Board struct {
	Entity
	Code        string `json:"code" db:"code"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

func NewBoard(code, name, description string) *Board {
	return &Board{
		Entity:      NewEntity(),
		Code:        code,
		Name:        name,
		Description: description,
	}
}

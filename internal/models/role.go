package models

// Role is a named permission label a user may hold, e.g. "admin" or "editor".
// Label is the display name shown in the panel ("Administrateur", "Éditeur").
type Role struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

package model

// Institution maps a school's display name to its registrar org code.
type Institution struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

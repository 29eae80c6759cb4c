package models

// Owner is the catalog's designated photographer (the administrative user).
type Owner struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

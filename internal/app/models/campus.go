package models

// Campus is a physical location of a school. IDs are assigned by the store.
type Campus struct {
	ID       int64  `json:"id"`
	SchoolID string `json:"school_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsMain   bool   `json:"is_main"`
}

// CampusInput is a campus as submitted inside a school record
type CampusInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address" validate:"required"`
	IsMain  bool   `json:"is_main"`
}

package models

// Faculty is an academic division of a school. Its ID is unique across all schools.
type Faculty struct {
	ID       string   `json:"id"`
	SchoolID string   `json:"school_id"`
	Name     string   `json:"name"`
	Code     *string  `json:"code"`
	Website  *string  `json:"website"`
	Programs []string `json:"programs"`
}

// FacultyInput is a faculty as submitted inside a school record
type FacultyInput struct {
	ID       string   `json:"id" validate:"required,max=100"`
	Name     string   `json:"name" validate:"required,max=255"`
	Code     *string  `json:"code" validate:"omitempty,max=10"`
	Website  *string  `json:"website" validate:"omitempty,max=500"`
	Programs []string `json:"programs"`
}

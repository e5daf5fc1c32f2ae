package dto

import "github.com/yigit/schooldirectory/internal/app/models"

// SchoolSummary is the list projection of a school
type SchoolSummary struct {
	ID       string `json:"id" example:"hust"`
	Code     string `json:"code" example:"BKA"`
	Name     string `json:"name" example:"Hanoi University of Science and Technology"`
	Type     string `json:"type" example:"public" enums:"public,private"`
	Country  string `json:"country" example:"VN"`
	Verified bool   `json:"verified" example:"true"`
}

// FacultySummary is the list projection of a faculty
type FacultySummary struct {
	ID       string  `json:"id" example:"hust-soict"`
	Name     string  `json:"name" example:"School of Information and Communication Technology"`
	Code     *string `json:"code" example:"SOICT"`
	SchoolID string  `json:"school_id" example:"hust"`
}

// DeleteResult reports the id of a removed resource
type DeleteResult struct {
	ID string `json:"id" example:"hust"`
}

// NewSchoolSummaries projects schools for list responses
func NewSchoolSummaries(schools []models.School) []SchoolSummary {
	out := make([]SchoolSummary, 0, len(schools))
	for _, s := range schools {
		out = append(out, SchoolSummary{
			ID:       s.ID,
			Code:     s.Code,
			Name:     s.Name,
			Type:     string(s.Type),
			Country:  s.Country,
			Verified: s.Verified,
		})
	}
	return out
}

// NewFacultySummaries projects faculties for list responses
func NewFacultySummaries(faculties []models.Faculty) []FacultySummary {
	out := make([]FacultySummary, 0, len(faculties))
	for _, f := range faculties {
		out = append(out, FacultySummary{
			ID:       f.ID,
			Name:     f.Name,
			Code:     f.Code,
			SchoolID: f.SchoolID,
		})
	}
	return out
}

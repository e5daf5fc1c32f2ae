package models

// School is the root entity. It exclusively owns its campuses and faculties.
type School struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	LogoURL     *string    `json:"logo_url"`
	Description string     `json:"description"`
	Type        SchoolType `json:"type"`
	Country     string     `json:"country"`
	Contact     Contact    `json:"contact"`
	Verified    bool       `json:"verified"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
	Campuses    []Campus   `json:"campuses"`
	Faculties   []Faculty  `json:"faculties"`
}

// Metadata carries the caller-maintained bookkeeping fields of a school
type Metadata struct {
	Verified  bool   `json:"verified"`
	CreatedAt string `json:"created_at" validate:"max=50"`
	UpdatedAt string `json:"updated_at" validate:"max=50"`
}

// SchoolInput is the full record accepted by create and update. Update replaces
// every top-level field and both child collections with what is given here.
type SchoolInput struct {
	ID          string         `json:"id" validate:"required,max=100"`
	Code        string         `json:"code" validate:"required,max=10"`
	Name        string         `json:"name" validate:"required,max=255"`
	LogoURL     *string        `json:"logo_url" validate:"omitempty,max=500"`
	Description string         `json:"description"`
	Type        string         `json:"type" validate:"required,oneof=public private"`
	Country     string         `json:"country" validate:"len=2,alpha"`
	Contact     Contact        `json:"contact"`
	Campuses    []CampusInput  `json:"campuses" validate:"dive"`
	Faculties   []FacultyInput `json:"faculties" validate:"dive"`
	Metadata    Metadata       `json:"metadata"`
}

// ToSchool builds the entity described by the input, children included.
func (in *SchoolInput) ToSchool() *School {
	school := &School{
		ID:          in.ID,
		Code:        in.Code,
		Name:        in.Name,
		LogoURL:     in.LogoURL,
		Description: in.Description,
		Type:        SchoolType(in.Type),
		Country:     in.Country,
		Contact:     in.Contact,
		Verified:    in.Metadata.Verified,
		CreatedAt:   in.Metadata.CreatedAt,
		UpdatedAt:   in.Metadata.UpdatedAt,
		Campuses:    make([]Campus, 0, len(in.Campuses)),
		Faculties:   make([]Faculty, 0, len(in.Faculties)),
	}

	for _, c := range in.Campuses {
		school.Campuses = append(school.Campuses, Campus{
			SchoolID: in.ID,
			Name:     c.Name,
			Address:  c.Address,
			IsMain:   c.IsMain,
		})
	}

	for _, f := range in.Faculties {
		programs := make([]string, len(f.Programs))
		copy(programs, f.Programs)
		school.Faculties = append(school.Faculties, Faculty{
			ID:       f.ID,
			SchoolID: in.ID,
			Name:     f.Name,
			Code:     f.Code,
			Website:  f.Website,
			Programs: programs,
		})
	}

	return school
}

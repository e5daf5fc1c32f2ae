package services

import "github.com/yigit/schooldirectory/internal/app/repositories"

// Services defined in this package:
// - SchoolService: schools together with their campuses and faculties
// - FacultyService: faculty lookups across all schools
type Services struct {
	Schools   SchoolService
	Faculties FacultyService
}

// NewServices wires every service to its repository
func NewServices(repos *repositories.Repositories) *Services {
	return &Services{
		Schools:   NewSchoolService(repos.Schools),
		Faculties: NewFacultyService(repos.Faculties),
	}
}

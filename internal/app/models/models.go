package models

// SchoolType classifies a school by ownership
type SchoolType string

const (
	SchoolTypePublic  SchoolType = "public"
	SchoolTypePrivate SchoolType = "private"
)

// DefaultCountry is applied when a school is written without a country
const DefaultCountry = "VN"

// Contact holds optional ways to reach a school. It is persisted as one JSON value.
type Contact struct {
	Website *string `json:"website"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
}

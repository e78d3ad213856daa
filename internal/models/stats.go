package models

// EnrollmentStats aggregates the enrollments collection.
type EnrollmentStats struct {
	Total   int                `json:"total"`
	Active  int                `json:"active"`
	Revenue int64              `json:"revenue"`
	Recent  []EnrollmentRecord `json:"recent"`
}

// ContactStats aggregates the contacts collection.
type ContactStats struct {
	Total  int             `json:"total"`
	New    int             `json:"new"`
	Recent []ContactRecord `json:"recent"`
}

// Stats is the combined payload served by the stats endpoint.
type Stats struct {
	Enrollments EnrollmentStats `json:"enrollments"`
	Contacts    ContactStats    `json:"contacts"`
}

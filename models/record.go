package models

// EnrollmentRecord is the client-side join of a student with its
// guardians and observations. Missing counterparts are zero values.
type EnrollmentRecord struct {
	Student
	Mae        Mother      `json:"mae"`
	Pai        Father      `json:"pai"`
	Observacao Observation `json:"observacao"`
}

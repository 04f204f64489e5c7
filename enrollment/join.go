// Package enrollment builds the composite enrollment view out of the four
// collections served by the backend.
package enrollment

import "github.com/SamuelLeutner/pre-enrollment/models"

// Join returns one record per student, in student order. Each student is
// matched to the first mother, father and observation carrying its id;
// later duplicates are ignored and a missing counterpart is left as the
// zero value.
func Join(students []models.Student, mothers []models.Mother, fathers []models.Father, observations []models.Observation) []models.EnrollmentRecord {
	motherByID := firstByID(mothers, func(m models.Mother) int { return m.IDMae })
	fatherByID := firstByID(fathers, func(f models.Father) int { return f.IDPai })
	obsByID := firstByID(observations, func(o models.Observation) int { return o.IDObservacoes })

	records := make([]models.EnrollmentRecord, 0, len(students))
	for _, s := range students {
		records = append(records, models.EnrollmentRecord{
			Student:    s,
			Mae:        motherByID[s.ID],
			Pai:        fatherByID[s.ID],
			Observacao: obsByID[s.ID],
		})
	}
	return records
}

func firstByID[T any](items []T, id func(T) int) map[int]T {
	index := make(map[int]T, len(items))
	for _, item := range items {
		key := id(item)
		if _, seen := index[key]; !seen {
			index[key] = item
		}
	}
	return index
}

package enrollment

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/SamuelLeutner/pre-enrollment/models"
	"github.com/SamuelLeutner/pre-enrollment/utils"
)

// Filter narrows the admin listing. Empty fields match everything.
type Filter struct {
	Query     string
	Turno     string
	AnoLetivo string
	Sexo      string
}

// Search keeps the records matching f, preserving their order. Query
// matches student, mother or father names ignoring case and accents, or
// the student's CPF by digits.
func Search(records []models.EnrollmentRecord, f Filter) []models.EnrollmentRecord {
	query := fold(f.Query)
	queryDigits := utils.Digits(f.Query)

	out := make([]models.EnrollmentRecord, 0, len(records))
	for _, r := range records {
		if !sameLabel(f.Turno, r.Turno) || !sameLabel(f.AnoLetivo, r.AnoLetivo) || !sameLabel(f.Sexo, r.Sexo) {
			continue
		}
		if query != "" && !matchesQuery(r, query, queryDigits) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Find returns the record of the student with the given id.
func Find(records []models.EnrollmentRecord, id int) (models.EnrollmentRecord, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return models.EnrollmentRecord{}, false
}

func matchesQuery(r models.EnrollmentRecord, query, queryDigits string) bool {
	for _, name := range []string{r.Nome, r.Mae.NomeMae, r.Pai.NomePai} {
		if strings.Contains(fold(name), query) {
			return true
		}
	}
	return queryDigits != "" && isNumeric(query) && strings.Contains(utils.Digits(r.CPF), queryDigits)
}

// isNumeric reports whether s only holds digits and document punctuation.
func isNumeric(s string) bool {
	return strings.Trim(s, "0123456789.-/ ") == ""
}

func sameLabel(want, got string) bool {
	return want == "" || fold(want) == fold(got)
}

// fold lowercases s and strips diacritics. Chained transformers keep
// state, so each call builds its own.
func fold(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(folder, strings.TrimSpace(s))
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

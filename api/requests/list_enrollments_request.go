package requests

import (
	"fmt"

	"github.com/SamuelLeutner/pre-enrollment/enrollment"
)

// MaxPageSize bounds the pageSize a client may ask for.
const MaxPageSize = 1000

type ListEnrollmentsRequest struct {
	Q           string `query:"q"`
	Turno       string `query:"turno"`
	AnoLetivo   string `query:"anoLetivo"`
	Sexo        string `query:"sexo"`
	CurrentPage int    `query:"currentPage"`
	PageSize    int    `query:"pageSize"`
}

func (r *ListEnrollmentsRequest) Filter() enrollment.Filter {
	return enrollment.Filter{
		Query:     r.Q,
		Turno:     r.Turno,
		AnoLetivo: r.AnoLetivo,
		Sexo:      r.Sexo,
	}
}

// Validate rejects negative paging and page sizes above MaxPageSize.
func (r *ListEnrollmentsRequest) Validate() error {
	if r.CurrentPage < 0 {
		return fmt.Errorf("currentPage must not be negative, got %d", r.CurrentPage)
	}
	if r.PageSize < 0 || r.PageSize > MaxPageSize {
		return fmt.Errorf("pageSize must be between 0 and %d, got %d", MaxPageSize, r.PageSize)
	}
	return nil
}

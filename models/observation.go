package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type Observation struct {
	IDObservacoes      int              `json:"idObservacoes"`
	TemEspecialista    Flag             `json:"temEspecialista"`
	Especialista       string           `json:"especialista,omitempty"`
	TemAlergias        Flag             `json:"temAlergias"`
	Alergia            string           `json:"alergia,omitempty"`
	TemMedicamento     Flag             `json:"temMedicamento"`
	Medicamento        string           `json:"medicamento,omitempty"`
	Reside             string           `json:"reside,omitempty"`
	RespNome           string           `json:"respNome,omitempty"`
	RespTelefone       string           `json:"respTelefone,omitempty"`
	PessoasAutorizadas AuthorizedPeople `json:"pessoasAutorizadas"`
}

// Flag decodes JSON booleans as well as the yes/no strings the forms post.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	s := strings.ToLower(strings.Trim(strings.TrimSpace(string(b)), `"`))
	switch s {
	case "true", "sim", "s", "yes", "1":
		*f = true
	case "false", "nao", "não", "n", "no", "0", "", "null":
		*f = false
	default:
		return fmt.Errorf("invalid flag value %s", string(b))
	}
	return nil
}

// AuthorizedPeople is always a list internally; the backend may send a
// JSON array or one delimited string.
type AuthorizedPeople []string

func (p *AuthorizedPeople) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = nil
		return nil
	}

	if trimmed[0] == '[' {
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("error parsing pessoasAutorizadas list: %w", err)
		}
		*p = compact(list)
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return fmt.Errorf("error parsing pessoasAutorizadas: %w", err)
	}
	*p = SplitPeople(s)
	return nil
}

// SplitPeople splits a free-text list on commas, semicolons or newlines.
func SplitPeople(s string) AuthorizedPeople {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	return compact(parts)
}

func compact(in []string) AuthorizedPeople {
	var out AuthorizedPeople
	for _, name := range in {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

package forms

import (
	"strings"

	"github.com/SamuelLeutner/pre-enrollment/utils"
)

// Kind selects the mask and validation rule of a field.
type Kind int

const (
	Text Kind = iota
	Phone
	CPF
	RG
	Date
	CEP
	Email
	Password
	Choice
)

// '#' is a digit slot, anything else is a literal.
var templates = map[Kind]string{
	Phone: "(##) #####-####",
	CPF:   "###.###.###-##",
	RG:    "##.###.###-#",
	Date:  "##/##/####",
	CEP:   "#####-###",
}

// Masked reports whether values of kind are rewritten by Mask.
func (k Kind) Masked() bool {
	_, ok := templates[k]
	return ok
}

// Mask formats raw into the display form of kind. Kinds without a
// template are returned untouched.
func Mask(kind Kind, raw string) string {
	tpl, ok := templates[kind]
	if !ok {
		return raw
	}
	return ApplyTemplate(tpl, utils.Digits(raw))
}

// ApplyTemplate fills the digit slots of tpl in order. Literals are only
// written when a digit follows them, so partial input stays partial.
func ApplyTemplate(tpl, digits string) string {
	var b strings.Builder
	i := 0
	for _, r := range tpl {
		if i >= len(digits) {
			break
		}
		if r == '#' {
			b.WriteByte(digits[i])
			i++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

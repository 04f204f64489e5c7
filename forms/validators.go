package forms

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_translations "github.com/go-playground/validator/v10/translations/pt_BR"

	"github.com/SamuelLeutner/pre-enrollment/utils"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	cpfTag  = "cpf"
	cpfText = "CPF inválido"

	rgTag  = "rg"
	rgText = "RG inválido"

	dateTag   = "data"
	dateText  = "Data inválida"
	dateRegex = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[0-2])/\d{4}$`)

	emailTag   = "emailsimples"
	emailText  = "E-mail inválido"
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	requiredTag  = "obrigatorio"
	requiredText = "Campo obrigatório"

	oneOfTag  = "oneof"
	oneOfText = "Opção inválida"
)

func init() {
	validate = validator.New()

	locale := pt_BR.New()
	uni := ut.New(locale, locale)
	translator, _ = uni.GetTranslator("pt_BR")
	_ = pt_translations.RegisterDefaultTranslations(validate, translator)

	_ = validate.RegisterValidation(cpfTag, digitCount(11))
	_ = validate.RegisterValidation(rgTag, digitCount(9))
	_ = validate.RegisterValidation(dateTag, func(fl validator.FieldLevel) bool {
		return dateRegex.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation(emailTag, func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation(requiredTag, func(fl validator.FieldLevel) bool {
		return !utils.IsBlank(fl.Field().String())
	})

	RegisterCustomTranslation(cpfTag, cpfText)
	RegisterCustomTranslation(rgTag, rgText)
	RegisterCustomTranslation(dateTag, dateText)
	RegisterCustomTranslation(emailTag, emailText)
	RegisterCustomTranslation(requiredTag, requiredText)
	RegisterCustomTranslation(oneOfTag, oneOfText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// digitCount checks the number of digits only; check digits are not
// verified.
func digitCount(n int) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return len(utils.Digits(fl.Field().String())) == n
	}
}

// Rules returns the validator tag list for a field, or "" when the field
// accepts anything.
func Rules(f Field) string {
	switch f.Kind {
	case CPF:
		return cpfTag
	case RG:
		return rgTag
	case Date:
		return dateTag
	case Email:
		return emailTag
	case Choice:
		if f.Optional {
			return ""
		}
		values := make([]string, 0, len(f.Options))
		for _, o := range f.Options {
			values = append(values, o.Value)
		}
		if len(values) == 0 {
			return requiredTag
		}
		return requiredTag + "," + oneOfTag + "=" + strings.Join(values, " ")
	default:
		if f.Optional {
			return ""
		}
		return requiredTag
	}
}

// Check returns the message for value under the rules of f, or "" when
// the value is valid.
func Check(f Field, value string) string {
	rules := Rules(f)
	if rules == "" {
		return ""
	}
	err := validate.Var(value, rules)
	if err == nil {
		return ""
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return verrs[0].Translate(translator)
	}
	return err.Error()
}

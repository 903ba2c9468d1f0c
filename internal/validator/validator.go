package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const maxTagLength = 50

var (
	personNamePattern = regexp.MustCompile(`^[A-Za-z .,'’\-()/]*[A-Za-z][A-Za-z .,'’\-()/]*$`)
	phonePattern      = regexp.MustCompile(`^[0-9]{3,}$`)
	labelPattern      = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
)

// Messages for the custom tags, used both by the translator and by callers
// that want to show the constraint to the user.
var customMessages = map[string]string{
	"personname": "{0} should only contain English letters, spaces and . , ' ’ - ( ) /, and must contain at least one letter",
	"phone":      "{0} should only contain digits and be at least 3 digits long",
	"tagname":    "tags should be alphanumeric and spaces, start with an alphanumeric character and be at most 50 characters long",
	"allergy":    "allergies should only contain alphanumeric characters and spaces, and must not be blank",
}

var (
	// trans is the English translator of Gin's binding engine.
	trans ut.Translator

	engine      *govalidator.Validate
	engineTrans ut.Translator
	engineOnce  sync.Once
)

// Setup registers the validator with English translations on Gin's binding engine.
// Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		trans = configure(v)
	}
}

// Engine returns the standalone validator used outside of request binding,
// e.g. by the command parser. It carries the same tags and translations as
// the Gin engine.
func Engine() *govalidator.Validate {
	engineOnce.Do(func() {
		engine = govalidator.New(govalidator.WithRequiredStructEnabled())
		engineTrans = configure(engine)
	})
	return engine
}

// Struct validates s with the standalone engine.
func Struct(s any) error {
	return Engine().Struct(s)
}

// Var validates a single value against tag with the standalone engine.
func Var(field any, tag string) error {
	return Engine().Var(field, tag)
}

func configure(v *govalidator.Validate) ut.Translator {
	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("personname", func(fl govalidator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl govalidator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("tagname", func(fl govalidator.FieldLevel) bool {
		s := fl.Field().String()
		return labelPattern.MatchString(s) && len([]rune(s)) <= maxTagLength
	})
	_ = v.RegisterValidation("allergy", func(fl govalidator.FieldLevel) bool {
		return labelPattern.MatchString(fl.Field().String())
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	t, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, t)
	for tag, msg := range customMessages {
		registerTranslation(v, t, tag, msg)
	}
	return t
}

func registerTranslation(v *govalidator.Validate, t ut.Translator, tag, msg string) {
	_ = v.RegisterTranslation(tag, t,
		func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		},
		func(ut ut.Translator, fe govalidator.FieldError) string {
			s, err := ut.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return s
		},
	)
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = translate(fe)
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// FirstMessage returns the message of the first failed field, or the error
// text when err is not a validation error.
func FirstMessage(err error) string {
	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return translate(ve[0])
	}
	return err.Error()
}

// translate tries the translator of each engine; a FieldError only
// translates with the translator of the engine that produced it.
func translate(fe govalidator.FieldError) string {
	for _, t := range []ut.Translator{trans, engineTrans} {
		if t == nil {
			continue
		}
		if s := fe.Translate(t); s != fe.Error() {
			return s
		}
	}
	return fe.Error()
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst any) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}

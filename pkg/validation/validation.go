package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// Теги пользовательских валидаторов.
const (
	StrongPasswordTag = "strongpassword"
	PhoneTag          = "phone"
	NotBlankTag       = "notblank"
)

// MinPasswordLength — минимальная длина пароля.
const MinPasswordLength = 8

var phoneRe = regexp.MustCompile(`^\+\d{1,3}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}$`)

var (
	setupOnce  sync.Once
	setupErr   error
	translator ut.Translator
)

// Setup регистрирует пользовательские валидаторы и английские переводы ошибок
// в движке валидации gin. Повторные вызовы ничего не делают.
func Setup() error {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		setupErr = Register(v)
	})
	return setupErr
}

// Register настраивает переданный валидатор: имена полей из json-тегов,
// пользовательские теги и переводы сообщений.
func Register(v *validator.Validate) error {
	// В сообщениях используем имена полей из JSON, а не из Go-структур
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	if err := v.RegisterValidation(StrongPasswordTag, strongPasswordValidation); err != nil {
		return err
	}
	if err := v.RegisterValidation(PhoneTag, phoneValidation); err != nil {
		return err
	}
	if err := v.RegisterValidation(NotBlankTag, notBlankValidation); err != nil {
		return err
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return err
	}

	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{StrongPasswordTag, PhoneTag, NotBlankTag} {
		if err := v.RegisterTranslation(tag, trans, registerFn, translateCustom); err != nil {
			return err
		}
	}
	translator = trans
	return nil
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case StrongPasswordTag:
		return fe.Field() + " must be at least 8 characters and contain a lowercase letter, an uppercase letter, a digit and a symbol"
	case PhoneTag:
		return fe.Field() + " must be a phone number in international format, e.g. +1 555 123 4567"
	case NotBlankTag:
		return fe.Field() + " cannot be blank"
	default:
		return fe.Error()
	}
}

// Details переводит ошибки валидации в map "поле -> сообщение".
// Для остальных ошибок возвращает nil.
func Details(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if translator != nil {
			out[fe.Field()] = fe.Translate(translator)
		} else {
			out[fe.Field()] = fe.Error()
		}
	}
	return out
}

// IsStrongPassword проверяет пароль: не короче 8 символов, есть строчная и заглавная буквы, цифра и спецсимвол.
func IsStrongPassword(s string) bool {
	if len([]rune(s)) < MinPasswordLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// IsPhone проверяет телефон в международном формате.
func IsPhone(s string) bool {
	return phoneRe.MatchString(s)
}

func strongPasswordValidation(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && IsStrongPassword(s)
}

func phoneValidation(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && IsPhone(s)
}

func notBlankValidation(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && strings.TrimSpace(s) != ""
}

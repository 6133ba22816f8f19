package validator

import (
	"log"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		err := v.RegisterValidation("phonenumber", phoneNumberValidator)
		if err != nil {
			log.Fatal("register phonenumber validator failed")
		}
	}
}

// IsValidPhone reports whether the input, after stripping every non-digit
// rune, is a 10-digit mobile number starting with 6-9.
func IsValidPhone(raw string) bool {
	var digits []rune
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}

	if len(digits) != 10 {
		return false
	}

	return digits[0] >= '6' && digits[0] <= '9'
}

var phoneNumberValidator validator.Func = func(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

// Violation is one rejected field, in request field order.
type Violation struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// Messages overrides the generic text per "field.tag" or per "field".
type Messages map[string]string

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers "date" for the loose date strings clients send.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Configure(v)
	}
}

func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, ok := helpers.ParseDate(s)
		return ok
	})
}

// ToViolations converts binding errors into the ordered violation list returned to clients.
func ToViolations(err error, msgs Messages) []Violation {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.Is(err, io.EOF) || errors.As(err, &se) || errors.As(err, &ute) {
		return []Violation{{Param: "payload", Msg: "invalid json"}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]Violation, 0, len(verrs))
		for _, fe := range verrs {
			field := fe.Field()
			msg, ok := msgs[field+"."+fe.Tag()]
			if !ok {
				msg, ok = msgs[field]
			}
			if !ok {
				msg = field + " " + formatFieldError(fe)
			}
			out = append(out, Violation{Param: field, Msg: msg})
		}
		return out
	}

	return []Violation{{Param: "payload", Msg: "invalid payload"}}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "date":
		return "must be a valid date"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + param + " characters"
		}
		return "must be at least " + param
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + param + " characters"
		}
		return "must be at most " + param
	case "len":
		return "must be exactly " + param + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "alphanum":
		return "must contain only letters and numbers"
	default:
		return "is invalid"
	}
}

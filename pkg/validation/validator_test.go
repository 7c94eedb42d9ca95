package validation

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type signup struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Since    string `json:"since" validate:"omitempty,date"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

func TestToViolationsKeepsFieldOrderAndMessages(t *testing.T) {
	err := newValidator().Struct(signup{Email: "nope", Password: "123"})
	got := ToViolations(err, Messages{
		"name":         "Name is required",
		"email":        "Please enter valid email",
		"password.min": "Please enter password with 6 or more characters",
	})
	assert.Equal(t, []Violation{
		{Param: "name", Msg: "Name is required"},
		{Param: "email", Msg: "Please enter valid email"},
		{Param: "password", Msg: "Please enter password with 6 or more characters"},
	}, got)
}

func TestToViolationsGenericFallback(t *testing.T) {
	err := newValidator().Struct(signup{Name: "a", Email: "a@b.co", Password: "123456", Since: "not a date"})
	assert.Equal(t, []Violation{{Param: "since", Msg: "since must be a valid date"}}, ToViolations(err, nil))
}

func TestDateRuleAcceptsKnownLayouts(t *testing.T) {
	v := newValidator()
	for _, d := range []string{"2020-01-02", "2020-01-02T10:00:00Z", "01/02/2020"} {
		assert.NoError(t, v.Struct(signup{Name: "a", Email: "a@b.co", Password: "123456", Since: d}), d)
	}
}

func TestToViolationsPayloadErrors(t *testing.T) {
	var se *json.SyntaxError
	synErr := json.Unmarshal([]byte("{"), &se)
	assert.Equal(t, "payload", ToViolations(synErr, nil)[0].Param)
	assert.Equal(t, []Violation{{Param: "payload", Msg: "invalid json"}}, ToViolations(io.EOF, nil))
	assert.Equal(t, []Violation{{Param: "payload", Msg: "invalid payload"}}, ToViolations(errors.New("x"), nil))
	assert.Nil(t, ToViolations(nil, nil))
}

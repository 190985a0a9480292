// Package validation checks form input before it is sent to the server.
// Failures are field-scoped: the keys of the returned errors are the JSON
// field names the server uses, so client and server errors render the same.
package validation

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/corpchat/internal/common"
	validation "github.com/go-ozzo/ozzo-validation"
)

const msgRequired = "this field is required"

var (
	msgUsernameLength = fmt.Sprintf("username must be between %d and %d characters", common.UsernameMinLen, common.UsernameMaxLen)
	msgPasswordLength = fmt.Sprintf("password must be at least %d characters", common.PasswordMinLen)
	msgContentLength  = fmt.Sprintf("message must be between %d and %d characters", common.MessageMinLen, common.MessageMaxLen)
)

type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate only checks presence; the server decides whether the pair is valid.
func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required.Error(msgRequired)),
		validation.Field(&f.Password, validation.Required.Error(msgRequired)),
	)
}

type RegisterForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (f RegisterForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username,
			validation.Required.Error(msgRequired),
			validation.RuneLength(common.UsernameMinLen, common.UsernameMaxLen).Error(msgUsernameLength),
		),
		validation.Field(&f.Password,
			validation.Required.Error(msgRequired),
			validation.RuneLength(common.PasswordMinLen, 0).Error(msgPasswordLength),
		),
	)
}

type ProfileForm struct {
	Username string `json:"username"`
}

func (f ProfileForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username,
			validation.Required.Error(msgRequired),
			validation.RuneLength(common.UsernameMinLen, common.UsernameMaxLen).Error(msgUsernameLength),
		),
	)
}

type MessageForm struct {
	Content string `json:"content"`
}

func (f MessageForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Content,
			validation.Required.Error(msgRequired),
			validation.RuneLength(common.MessageMinLen, common.MessageMaxLen).Error(msgContentLength),
		),
	)
}

// Fields flattens a Validate error into field name -> message. It returns nil
// when err carries no field errors.
func Fields(err error) map[string]string {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil
	}

	out := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		if fieldErr != nil {
			out[field] = fieldErr.Error()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

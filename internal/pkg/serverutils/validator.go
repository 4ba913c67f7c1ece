package serverutils

import (
	"collectible-documenter-be/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return apperr.Validation(err.Error())
	}
	return nil
}

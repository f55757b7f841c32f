package model

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate 按结构体 tag 校验实体
func Validate(v any) error {
	return validate.Struct(v)
}

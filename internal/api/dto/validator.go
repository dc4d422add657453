package dto

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"law_office_v1/internal/model"
	"law_office_v1/internal/repository"
)

// 枚举校验规则
var enumValidators = map[string]func(string) bool{
	"usertype":  func(v string) bool { return model.UserType(v).IsValid() },
	"authtype":  func(v string) bool { return model.AuthType(v).IsValid() },
	"lawstatus": func(v string) bool { return model.LawCaseStatus(v).IsValid() },
	"boardtype": func(v string) bool { return model.BoardType(v).IsValid() },
	"showtype":  func(v string) bool { return repository.ShowType(v).IsValid() },
}

// RegisterValidators 在 gin 的校验引擎上注册枚举规则
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	for tag, check := range enumValidators {
		check := check
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("register validation %s: %w", tag, err)
		}
	}
	return nil
}

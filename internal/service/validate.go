package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// checkStruct 结构校验；失败时枚举违规字段返回 InvalidInput
func checkStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return invalidInput(err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return invalidInput(fmt.Sprintf("Invalid input: %s", strings.Join(fields, ", ")))
}

// Package validation wraps go-playground/validator with a shared instance,
// JSON field names in messages and an InvalidInput error on failure.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	errprocess "short_video_service/pkg/err"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	handleRe = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
)

// FieldError 單一欄位的驗證錯誤
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// 訊息使用 JSON 欄位名稱
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// handle: username 只允許英數, 底線與點
		_ = validate.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
			return handleRe.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Fields 驗證失敗的欄位明細, 通過時回傳 nil
func Fields(s interface{}) []FieldError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}
	}

	out := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		out[i] = FieldError{Field: fe.Field(), Tag: fe.Tag(), Message: translateError(fe)}
	}
	return out
}

// ValidateStruct 驗證失敗時回傳 InvalidInput
func ValidateStruct(s interface{}) error {
	fields := Fields(s)
	if len(fields) == 0 {
		return nil
	}

	messages := make([]string, len(fields))
	for i, f := range fields {
		messages[i] = f.Message
	}
	return errprocess.InvalidInput(strings.Join(messages, "; "))
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"url":      "%s must be a valid URL",
	"handle":   "%s may only contain letters, digits, '_' and '.'",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
}

func translateError(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	isString := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}

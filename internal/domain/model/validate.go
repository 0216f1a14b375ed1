package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/target/recruit-board/internal/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate //nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Report JSON field names so errors match the request payload.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		mustRegister(v, "user_role", func(fl validator.FieldLevel) bool {
			return Role(fl.Field().String()).Valid()
		})
		mustRegister(v, "task_status", func(fl validator.FieldLevel) bool {
			return TaskStatus(fl.Field().String()).Valid()
		})
		mustRegister(v, "task_priority", func(fl validator.FieldLevel) bool {
			return TaskPriority(fl.Field().String()).Valid()
		})
		mustRegister(v, "resume_id", func(fl validator.FieldLevel) bool {
			return ValidResumeID(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// validateStruct runs tag validation and converts the first failure into a
// validation AppError naming the offending JSON field.
func validateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid request")
	}

	fe := verrs[0]
	return apperrors.ValidationField(fe.Field(), fe.Field()+" "+describeFieldError(fe))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required and cannot be empty"
	case "email":
		return "must be a valid email address"
	case "max":
		return "cannot exceed " + fe.Param() + " characters"
	case "uuid":
		return "must be a valid UUID"
	case "user_role":
		return "must be one of: " + joinEnum(AllRoles())
	case "task_status":
		return "must be one of: " + joinEnum(AllTaskStatuses())
	case "task_priority":
		return "must be one of: " + joinEnum(AllTaskPriorities())
	case "resume_id":
		return "must be a resume id returned by the upload endpoint"
	default:
		return "is invalid"
	}
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

package usecase

import (
	"errors"
	"reflect"
	"strings"

	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/go-playground/validator/v10"
)

// employeeForm — нормализованные поля сотрудника для валидации
type employeeForm struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Email       string   `json:"email" validate:"required,email,max=254"`
	Mobile      string   `json:"mobile" validate:"required,len=10,numeric"`
	Designation string   `json:"designation" validate:"required,oneof=HR Manager Sales"`
	Gender      string   `json:"gender" validate:"required,oneof=M F"`
	Course      []string `json:"course" validate:"min=1,dive,oneof=MCA BCA BSC"`
}

type credentialsForm struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// сообщения как в форме панели
var fieldMessages = map[string]string{
	"name":        "Name is required",
	"email":       "Invalid email format",
	"mobile":      "Mobile number must be 10 digits",
	"designation": "Designation must be one of HR, Manager, Sales",
	"gender":      "Please select a gender",
	"course":      "Please select at least one course from MCA, BCA, BSC",
	"username":    "Username is required",
	"password":    "Password is required",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct переводит ошибки validator в domain.ValidationError
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// course[1] -> course
		field, _, _ := strings.Cut(fe.Field(), "[")
		if _, exists := fields[field]; exists {
			continue
		}
		msg, ok := fieldMessages[field]
		if !ok {
			msg = "invalid value"
		}
		if fe.Tag() == "max" {
			msg = field + " is too long"
		}
		fields[field] = msg
	}
	return &domain.ValidationError{Fields: fields}
}

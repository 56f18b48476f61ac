package profile

import (
	"github.com/peopledesk/peopledesk-api/internal/pkg/validator"
)

type Filter struct {
	Department *string
	Search     *string // matches full_name or email
	Page       int
	Limit      int
}

type CreateProfileRequest struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	Phone      *string `json:"phone"`
	HireDate   *string `json:"hire_date"` // YYYY-MM-DD
	AvatarURL  *string `json:"avatar_url"`
}

func (r CreateProfileRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "ID is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "Valid email is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "Full name is required"})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "Hire date must be YYYY-MM-DD"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProfileRequest struct {
	ID         string  `json:"-"`
	FullName   *string `json:"full_name"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	Phone      *string `json:"phone"`
	HireDate   *string `json:"hire_date"`
	AvatarURL  *string `json:"avatar_url"`
}

func (r UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "Full name cannot be empty"})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "Hire date must be YYYY-MM-DD"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Package validation checks request input and reports failures as
// BadRequestError values the handler package renders directly.
//
// Struct tag validation uses go-playground/validator:
//
//	type CreateUser struct {
//	    Name  string `json:"name" validate:"required,min=2"`
//	    Email string `json:"email" validate:"required,email"`
//	}
//	if err := validation.Validate(req); err != nil {
//	    return err // 400 {"error":{"message":"name: is required","type":"BadRequestError"}}
//	}
//
// Programmatic checks collect into a Validator:
//
//	err := validation.New().Required("id", id).MaxLength("note", note, 140).Err()
package validation

package handler

import (
	"encoding/json"
	"errors"

	"book_catalog/internal/model"

	"github.com/go-playground/validator/v10"
)

// fieldMessage translates one failed binding rule into the API's
// client-facing message for that field.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Username":
		switch fe.Tag() {
		case "min":
			return "Username must be at least 3 characters long"
		case "max":
			return "Username must be at most 30 characters long"
		}
		return "Username is required"
	case "Email":
		if fe.Tag() == "email" {
			return "Invalid email address"
		}
		return "Email is required"
	case "Password":
		if fe.Tag() == "min" {
			return "Password must be at least 6 characters long"
		}
		return "Password is required"
	case "Role":
		return "Role must be either 'user' or 'admin'"
	case "Title":
		return "Title is required"
	case "Author":
		return "Author is required"
	case "PublishedDate":
		return "Published Date is required and should be a valid date"
	case "Pages":
		return "Pages should be a positive integer"
	case "Genre":
		return "Genre is required"
	case "Page":
		return "Page must be a positive integer"
	case "Limit":
		return "Limit must be a positive integer"
	case "Order":
		return "Order must be either ASC or DESC"
	}
	return fe.Field() + " is invalid"
}

// typeMessage maps a JSON type mismatch to the owning field's message.
// encoding/json aborts at the first mismatch, so there is only ever one.
func typeMessage(field string) string {
	switch field {
	case "pages":
		return "Pages should be a positive integer"
	case "publishedDate":
		return "Published Date is required and should be a valid date"
	}
	return "Invalid value for field " + field
}

// validationMessages collects every message for a failed binding. Unlike
// the first-error register path, book validation reports all fields.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return msgs
	}

	if errors.Is(err, model.ErrInvalidDate) {
		return []string{"Published Date is required and should be a valid date"}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []string{typeMessage(typeErr.Field)}
	}

	return []string{"Invalid request body"}
}

// firstValidationMessage returns just the first failure, matching the
// register endpoint's abort-early contract.
func firstValidationMessage(err error) string {
	return validationMessages(err)[0]
}

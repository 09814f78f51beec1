// Package apperror provides utilities to handle and map custom validation errors.
package apperror

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	errRequired       = errors.New("is required")
	errMustBePositive = errors.New("must be a positive number")
	errInvalidPassage = errors.New("must be a passage reference like John 3:16")
)

var customErrors = map[string]error{
	"CreateJournalRequest.DevotionalID.required": errRequired,
	"CreateJournalRequest.Day.required":          errRequired,
	"CreateJournalRequest.Day.gte":               errMustBePositive,
	"CreateJournalRequest.Subject.required":      errRequired,
	"CreateJournalRequest.Content.required":      errRequired,
	"CreateBookmarkRequest.Passage.required":     errRequired,
	"CreateBookmarkRequest.Passage.passageref":   errInvalidPassage,
	"UpdateNameRequest.Name.required":            errRequired,
}

// CustomValidationError converts validator errors into a standardized format.
func CustomValidationError(err error) []map[string]string {
	errList := make([]map[string]string, 0)

	var validationErr validator.ValidationErrors

	switch {
	case errors.As(err, &validationErr):
		for _, e := range validationErr {
			field := e.StructNamespace()
			key := field + "." + e.Tag()

			errMsg := fmt.Sprintf("%s is invalid", field)
			if v, ok := customErrors[key]; ok {
				errMsg = v.Error()
			}

			errList = append(errList, map[string]string{e.Field(): errMsg})
		}
	}
	return errList
}

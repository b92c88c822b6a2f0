package utils

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// Every failure shares the {success, error, message} envelope, see JSONError.

func CreateInternalServerError(ctx iris.Context) {
	JSONError(ctx, iris.StatusInternalServerError, "server_error", "An unexpected error occurred.")
}

func CreateNotFound(ctx iris.Context) {
	JSONError(ctx, iris.StatusNotFound, "not_found", "Resource not found.")
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	CreateConflict(ctx, "email_taken", "Email already registered.")
}

// CreateConflict returns 409 with a machine-readable error code, e.g. the
// overlapping-reservation signal.
func CreateConflict(ctx iris.Context, code string, message string) {
	JSONError(ctx, iris.StatusConflict, code, message)
}

func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{
			"success": false,
			"error":   "validation_error",
			"message": "One or more fields failed to be validated",
			"errors":  wrapValidationErrors(errs),
		})
		return
	}

	log.Printf("request body error: %v", err)
	JSONError(ctx, iris.StatusBadRequest, "invalid_payload", "Malformed request body")
}

func wrapValidationErrors(errs validator.ValidationErrors) []validationError {
	validationErrors := make([]validationError, 0, len(errs))
	for _, validationErr := range errs {
		validationErrors = append(validationErrors, validationError{
			ActualTag: validationErr.ActualTag(),
			Namespace: validationErr.Namespace(),
			Kind:      validationErr.Kind().String(),
			Type:      validationErr.Type().String(),
			Value:     validationErr.Value(),
			Param:     validationErr.Param(),
		})
	}
	return validationErrors
}

type validationError struct {
	ActualTag string      `json:"tag"`
	Namespace string      `json:"namespace"`
	Kind      string      `json:"kind"`
	Type      string      `json:"type"`
	Value     interface{} `json:"value"`
	Param     string      `json:"param"`
}

package rekuest

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/lotwise/backend/internal/pkg/lwerr"
)

var Validate = validator.New()

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

func describe(ve validator.ValidationErrors) []*ErrorResponse {
	violations := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		violations = append(violations, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   fe.Error(),
		})
	}
	return violations
}

func validateStruct(s any) []*ErrorResponse {
	err := Validate.Struct(s)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			panic(err)
		}
		return describe(errs)
	}
	return nil
}

// ValidQuery parses the query string from *fiber.Ctx into dest using
// fiber#QueryParser(), then validates it using the validator singleton.
// dest shall always be a pointer.
func ValidQuery(ctx *fiber.Ctx, dest any) error {
	if err := ctx.QueryParser(dest); err != nil {
		return lwerr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	if err := validateStruct(dest); err != nil {
		return lwerr.NewInvalidViolations(err)
	}

	return nil
}

func ValidStruct(dest any) error {
	if err := validateStruct(dest); err != nil {
		return lwerr.NewInvalidViolations(err)
	}

	return nil
}

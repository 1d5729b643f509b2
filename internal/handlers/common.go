package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/maccam68/caredesk/internal/types"
	"github.com/maccam68/caredesk/internal/utils"
)

// respondError maps a service error to the JSON error envelope. RequestError
// values carry their own status code and type; anything else is a 500.
func respondError(c *fiber.Ctx, err error, errorType string) error {
	var reqErr *types.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.Code {
		case fiber.StatusNotFound:
			return utils.NotFoundResponse(c, reqErr.Message)
		case fiber.StatusConflict:
			if reqErr.Type == "transition" {
				return utils.TransitionErrorResponse(c, reqErr.Message)
			}
		}
		return utils.ErrorResponse(c, reqErr.Message, reqErr.Code, reqErr.Type)
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, &types.RequestError{
			Code:    fiber.StatusBadRequest,
			Message: "invalid " + name + " parameter: " + raw,
			Type:    "request.validation.param",
		}
	}
	return uint(id), nil
}

// parseUintQuery reads an optional positive integer query parameter, zero
// when absent.
func parseUintQuery(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &types.RequestError{
			Code:    fiber.StatusBadRequest,
			Message: "invalid " + name + " parameter: " + raw,
			Type:    "request.validation.query",
		}
	}
	return uint(id), nil
}

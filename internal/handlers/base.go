package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipeshare/internal/apperr"
	"recipeshare/internal/logging"
	"recipeshare/internal/utils"
	"recipeshare/internal/validation"
)

// respondError writes {"message": ...} with the status for the error's
// kind. Internal errors are logged and reported generically.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logging.Ctx(c.Request.Context()).Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}
	c.AbortWithStatusJSON(apperr.HTTPStatus(kind), gin.H{"message": apperr.Message(err)})
}

// bindJSON decodes the body into req and validates it. Unknown fields are
// rejected.
func bindJSON(c *gin.Context, req any) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return apperr.InvalidInput("Invalid request body")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperr.InvalidInput(typeErr.Field + " has the wrong type")
		}
		return apperr.InvalidInput("Invalid request body")
	}
	return validation.ValidateStruct(req)
}

func paramID(c *gin.Context, name string) (uint, error) {
	return utils.ParseID(c.Param(name))
}

// FlexibleID accepts a JSON number or a numeric string.
type FlexibleID uint

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := utils.ParseID(s)
		if err != nil {
			return err
		}
		*id = FlexibleID(parsed)
		return nil
	}
	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexibleID(n)
	return nil
}

func respondOK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

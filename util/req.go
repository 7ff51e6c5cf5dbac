package util

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Status  int
	Message string
	// Fields carries per-field validation messages, e.g.
	// {"image": "the submitted file is empty"}
	Fields map[string]string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

var (
	DbHTTPErr = HTTPError{
		Message: "database error",
		Status:  http.StatusInternalServerError,
	}
	MalformedIdHTTPErr = HTTPError{
		Message: "id malformed",
		Status:  http.StatusBadRequest,
	}
)

func BuildDbHTTPErr(err error) *HTTPError {
	log.Error().Err(err).Msg("database error occurred")
	return &DbHTTPErr
}

func BuildJSONBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: err.Error(),
	}
}

func BuildNotFoundHTTPErr(what string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusNotFound,
		Message: what + " not found",
	}
}

func BuildValidationHTTPErr(fields map[string]string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: "validation failed",
		Fields:  fields,
	}
}

/*
	HandleHTTPErrorRes handles creating the appropriate response for the HTTP error.
	break the route after calling this function
*/
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	body := gin.H{
		"success": false,
		"message": err.Message,
	}
	if len(err.Fields) > 0 {
		body["fields"] = err.Fields
	}
	c.JSON(err.Status, body)
}

type HandlerOpts struct {
}

// HandlerWrapper renders the handler result as a success envelope. Handlers
// that already wrote the response themselves (redirects) return a nil result
// and nothing more is written.
func HandlerWrapper(handler func(c *gin.Context) (interface{}, *HTTPError), opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, httpErr := handler(c)
		if httpErr != nil {
			HandleHTTPErrorRes(c, httpErr)
			return
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    res,
		})
	}
}

func ParseId(raw string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &MalformedIdHTTPErr
	}
	return id, nil
}

package response

import (
	"net/http"

	"github.com/UMwai/um-biotech-catalyst-radar/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Unauthorized sends 401 response.
func Unauthorized(c *gin.Context) {
	Error(c, errors.NewUnauthorizedHTTPError())
}

func parseError(err error) (int, Resp) {
	switch parsedErr := err.(type) {
	case *errors.ValidationError:
		return http.StatusBadRequest, Resp{
			ErrorCode: parsedErr.Code,
			Message:   parsedErr.Error(),
		}
	case *errors.HTTPError:
		statusCode := parsedErr.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusBadRequest
		}
		return statusCode, Resp{
			ErrorCode: parsedErr.Code,
			Message:   parsedErr.Message,
		}
	default:
		return http.StatusInternalServerError, Resp{
			ErrorCode: InternalServerErrorCode,
			Message:   DefaultErrorMessage,
		}
	}
}

// Error sends the error response mapped from err.
func Error(c *gin.Context, err error) {
	statusCode, resp := parseError(err)
	c.JSON(statusCode, resp)
}

// ErrorWithMap looks up err in eMap and sends the corresponding
// HTTPError, falling back to Error.
func ErrorWithMap(c *gin.Context, err error, eMap ErrorMapping) {
	if httpErr, ok := eMap[err]; ok {
		Error(c, httpErr)
		return
	}
	Error(c, err)
}

// PanicError handles panic recovery and sends an error response.
func PanicError(c *gin.Context, recovered any) {
	if errVal, ok := recovered.(error); ok {
		Error(c, errVal)
		return
	}
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: InternalServerErrorCode,
		Message:   DefaultErrorMessage,
	})
}

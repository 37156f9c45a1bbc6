package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Used by swagger to generate documentation
type Response[T any] struct {
	Code ErrorCode `json:"code"`
	Data T         `json:"data"`
	Msg  string    `json:"msg"`
}

// wrapResponse wraps the response data and sends it back to the client.
// It takes in a Gin context, a message string, data any, and an ErrorCode.
// The function sets the appropriate HTTP status code based on the ErrorCode.
// It then serializes the response data into JSON format and sends it back to the client.
func wrapResponse(c *gin.Context, msg string, data any, code ErrorCode) {
	httpCode := http.StatusOK
	if code != OK {
		httpCode = http.StatusInternalServerError
	}
	c.JSON(httpCode, gin.H{
		"code": code,
		"data": data,
		"msg":  msg,
	})
}

// Success sends a successful response to the client with the provided data.
func Success(c *gin.Context, data any) {
	wrapResponse(c, "", data, OK)
}

// SuccessWithWarning reports a committed mutation whose secondary work
// partially failed (e.g. some uploaded files were rejected). The code stays
// OK so clients treat it as success; the warning travels in msg.
func SuccessWithWarning(c *gin.Context, data any, warning string) {
	wrapResponse(c, warning, data, OK)
}

// Error sends an error response to the client with the specified message and error code.
func Error(c *gin.Context, msg string, errorCode ErrorCode) {
	wrapResponse(c, msg, nil, errorCode)
}

// HTTPError sends an HTTP error response with the specified HTTP code, error message, and error code.
func HTTPError(c *gin.Context, httpCode int, msg string, errorCode ErrorCode) {
	c.JSON(httpCode, gin.H{
		"code": errorCode,
		"data": nil,
		"msg":  msg,
	})
}

// 用于 Gin ShouldBindJSON、ShouldBindQuery 等绑定参数失败时返回错误
func BadRequestError(c *gin.Context, msg string) {
	HTTPError(c, http.StatusBadRequest, msg, InvalidRequest)
}

// NotFoundError reports a dangling reference to a missing entity.
func NotFoundError(c *gin.Context, msg string, errorCode ErrorCode) {
	HTTPError(c, http.StatusNotFound, msg, errorCode)
}

// PermissionError reports a denied authorization check.
func PermissionError(c *gin.Context) {
	HTTPError(c, http.StatusForbidden, "insufficient permissions", InsufficientPermissions)
}

// ValidationError re-surfaces attribute-level validation failures as a
// structured error list attached to the entity.
func ValidationError(c *gin.Context, errs map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"code": ValidationFailed,
		"data": errs,
		"msg":  "validation failed",
	})
}

// WantsXML reports whether the client asked for the XML rendition, either
// via ?format=xml or an Accept header.
func WantsXML(c *gin.Context) bool {
	if c.Query("format") == "xml" {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/xml")
}

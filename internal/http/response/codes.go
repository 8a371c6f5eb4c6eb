package response

const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeInternal        = 500
)

// 错误状态标签
const (
	StatusFail  = "fail"
	StatusError = "error"
)

// HTTPStatus 业务码对应的 HTTP 状态码，非 4xx/5xx 一律为 200
func HTTPStatus(code int) int {
	if code >= 400 && code < 600 {
		return code
	}
	return 200
}

// StatusLabel 4xx 为 fail，5xx 为 error
func StatusLabel(code int) string {
	if code >= 500 {
		return StatusError
	}
	if code >= 400 {
		return StatusFail
	}
	return ""
}

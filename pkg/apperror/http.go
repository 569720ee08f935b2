package apperror

import "net/http"

func GetHTTPStatus(kind Kind) int {
	switch kind {
	case InvalidInput:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case AlreadyExists, Conflict:
		return http.StatusConflict
	case Unauthorised:
		return http.StatusUnauthorized
	case Forbidden, QuotaExceeded:
		return http.StatusForbidden
	case RequestTimeout:
		return http.StatusGatewayTimeout
	case Dependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

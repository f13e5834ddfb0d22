package constant

const (
	ERR_VALIDATION_CODE                 = "VALIDATION_ERROR"
	ERR_INVALID_REQUEST_BODY_ERROR_CODE = "INVALID_REQUEST_BODY_ERROR"
	ERR_INTERNAL_SERVER_ERROR_CODE      = "INTERNAL_SERVER_ERROR"
	ERR_INTERNAL_SERVER_ERROR_MESSAGE   = "Something went wrong. If the problem persists, please contact support"
	ERR_INVALID_REQUEST_BODY_MESSAGE    = "The request is invalid or malformed"
	ERR_NOT_FOUND_ERROR                 = "NOT_FOUND_ERROR"
	ERR_UNAUTHORIZED_ERROR              = "UNAUTHORIZED_ERROR"
	ERR_FORBIDDEN_ERROR                 = "FORBIDDEN_ERROR"

	ERR_NO_CHANGE_SUPPLIED_CODE    = "NO_CHANGE_SUPPLIED"
	ERR_MISSING_TYPE_FOR_FILE_CODE = "MISSING_TYPE_FOR_FILE"
	ERR_TYPE_MISMATCH_CODE         = "TYPE_MISMATCH"
	ERR_NO_FILE_PROVIDED_CODE      = "NO_FILE_PROVIDED"
)

const MAX_FILE_SIZE = 32 * 1024 * 1024

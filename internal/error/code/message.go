package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "success",
	ErrUnknown:         "internal server error",
	ErrBind:            "invalid request parameters",
	ErrValidation:      "request validation failed",
	ErrTokenInvalid:    "invalid or expired token",
	ErrForbidden:       "insufficient permissions",
	ErrTooManyRequests: "too many requests, please try again later",
	ErrTimeout:         "request timed out, please try again",

	// 账户相关错误码
	ErrUserNotFound:      "user not found",
	ErrUserAlreadyExist:  "username or email already in use",
	ErrPasswordIncorrect: "invalid username or password",
	ErrAccountInactive:   "account is deactivated",

	// 产品相关错误码
	ErrProductNotFound:   "product not found",
	ErrProductInactive:   "product is not available",
	ErrInsufficientStock: "insufficient stock",

	// 订单相关错误码
	ErrOrderNotFound:      "order not found",
	ErrOrderEmpty:         "order must contain at least one item",
	ErrOrderStatusInvalid: "invalid order status",

	// 留言相关错误码
	ErrMessageNotFound: "contact message not found",

	// 数据库相关错误码
	ErrDatabase:       "database error",
	ErrRecordNotFound: "record not found",

	// 粉丝相册相关错误码
	ErrPhotoNotFound:      "fan photo not found",
	ErrPhotoStatusInvalid: "invalid photo status",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrForbidden:       StatusForbidden,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrTimeout:         StatusServiceUnavailable,

	// 账户相关错误码
	ErrUserNotFound:      StatusNotFound,
	ErrUserAlreadyExist:  StatusConflict,
	ErrPasswordIncorrect: StatusUnauthorized,
	ErrAccountInactive:   StatusForbidden,

	// 产品相关错误码
	ErrProductNotFound:   StatusNotFound,
	ErrProductInactive:   StatusBadRequest,
	ErrInsufficientStock: StatusBadRequest,

	// 订单相关错误码
	ErrOrderNotFound:      StatusNotFound,
	ErrOrderEmpty:         StatusBadRequest,
	ErrOrderStatusInvalid: StatusBadRequest,

	// 留言相关错误码
	ErrMessageNotFound: StatusNotFound,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,

	// 粉丝相册相关错误码
	ErrPhotoNotFound:      StatusNotFound,
	ErrPhotoStatusInvalid: StatusBadRequest,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "internal server error"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}

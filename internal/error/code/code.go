package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 资源冲突.
	StatusConflict = 409
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusServiceUnavailable - 503: 服务暂不可用.
	StatusServiceUnavailable = 503
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrForbidden - 403: 权限不足.
	ErrForbidden
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
	// ErrTimeout - 503: 请求处理超时.
	ErrTimeout
)

// 账户相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 409: 用户名或邮箱已被占用.
	ErrUserAlreadyExist
	// ErrPasswordIncorrect - 401: 用户名或密码错误.
	ErrPasswordIncorrect
	// ErrAccountInactive - 403: 账户已停用.
	ErrAccountInactive
)

// 产品相关错误码 (102xxx).
const (
	// ErrProductNotFound - 404: 产品不存在.
	ErrProductNotFound int = iota + 102000
	// ErrProductInactive - 400: 产品已下架.
	ErrProductInactive
	// ErrInsufficientStock - 400: 库存不足.
	ErrInsufficientStock
)

// 订单相关错误码 (103xxx).
const (
	// ErrOrderNotFound - 404: 订单不存在.
	ErrOrderNotFound int = iota + 103000
	// ErrOrderEmpty - 400: 订单不包含任何商品.
	ErrOrderEmpty
	// ErrOrderStatusInvalid - 400: 非法的订单状态流转.
	ErrOrderStatusInvalid
)

// 留言相关错误码 (104xxx).
const (
	// ErrMessageNotFound - 404: 留言不存在.
	ErrMessageNotFound int = iota + 104000
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)

// 粉丝相册相关错误码 (106xxx).
const (
	// ErrPhotoNotFound - 404: 照片不存在.
	ErrPhotoNotFound int = iota + 106000
	// ErrPhotoStatusInvalid - 400: 非法的照片审核状态.
	ErrPhotoStatusInvalid
)

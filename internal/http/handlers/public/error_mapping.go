package public

import (
	"errors"

	"github.com/giftmart/internal/http/response"
	"github.com/giftmart/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var placeOrderErrorRules = []mappedHandlerError{
	{target: service.ErrUnauthorized, code: response.CodeUnauthorized, msg: "unauthorized"},
	{target: service.ErrUserBlocked, code: response.CodeForbidden, msg: "account is blocked"},
	{target: service.ErrNoValidItems, code: response.CodeBadRequest, msg: "no valid items in order"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrPaymentFailed, code: response.CodeBadRequest, msg: "payment failed"},
	{target: service.ErrOrderCreateFailed, code: response.CodeInternal, msg: "order create failed"},
}

func respondPlaceOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, placeOrderErrorRules, response.CodeInternal, "order create failed")
}

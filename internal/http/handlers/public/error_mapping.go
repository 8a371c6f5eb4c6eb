package public

import (
	"errors"

	"github.com/kitshop/internal/http/response"
	"github.com/kitshop/internal/i18n"
	"github.com/kitshop/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// localizedViolation 携带文案 key 的校验错误
type localizedViolation interface {
	Key() string
	Args() []interface{}
}

// respondCredentialError 输出用户名或密码规则的具体提示
func respondCredentialError(c *gin.Context, err error) {
	var violation localizedViolation
	if errors.As(err, &violation) {
		locale := i18n.ResolveLocale(c)
		respondErrorWithMsg(c, response.CodeBadRequest, i18n.Sprintf(locale, violation.Key(), violation.Args()...), nil)
		return
	}
	respondError(c, response.CodeBadRequest, "error.password_weak", nil)
}

var catalogLookupErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidItemKind, code: response.CodeBadRequest, key: "error.item_kind_invalid"},
	{target: service.ErrCatalogItemNotFound, code: response.CodeNotFound, key: "error.catalog_item_not_found"},
}

var cartAddErrorRules = concatMappedHandlerErrors(catalogLookupErrorRules, []mappedHandlerError{
	{target: service.ErrInvalidCartQuantity, code: response.CodeBadRequest, key: "error.cart_quantity_invalid"},
})

var cartRemoveErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidItemKind, code: response.CodeBadRequest, key: "error.item_kind_invalid"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
	{target: service.ErrCartItemAmbiguous, code: response.CodeBadRequest, key: "error.cart_item_ambiguous"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrShippingAddressRequired, code: response.CodeBadRequest, key: "error.shipping_address_missing"},
	{target: service.ErrShippingAddressTooLong, code: response.CodeBadRequest, key: "error.shipping_address_too_long"},
	{target: service.ErrEmptyCart, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrCartConflict, code: response.CodeConflict, key: "error.cart_conflict"},
}

var orderLookupErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
}

var registerErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrUsernameRequired, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrUserExists, code: response.CodeBadRequest, key: "error.user_exists"},
}

var kitRequestErrorRules = []mappedHandlerError{
	{target: service.ErrKitRequestNameRequired, code: response.CodeBadRequest, key: "error.kit_request_contact_required"},
	{target: service.ErrKitRequestKitRequired, code: response.CodeBadRequest, key: "error.kit_request_kit_required"},
	{target: service.ErrKitRequestFieldTooLong, code: response.CodeBadRequest, key: "error.kit_request_field_too_long"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrCatalogItemNotFound, code: response.CodeNotFound, key: "error.kit_not_found"},
}

var kitRequestListErrorRules = []mappedHandlerError{
	{target: service.ErrKitRequestStatusInvalid, code: response.CodeBadRequest, key: "error.kit_request_status_invalid"},
	{target: service.ErrKitRequestNotFound, code: response.CodeNotFound, key: "error.kit_request_not_found"},
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.login_invalid"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, key: "error.user_disabled"},
}

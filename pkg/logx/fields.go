package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldCallbackData    = "callback-data"
	FieldChatID          = "chat-id"
	FieldCommand         = "command"
	FieldDealID          = "deal-id"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldErrorCode       = "error-code"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldItemID          = "item-id"
	FieldMessageID       = "message-id"
	FieldQuantity        = "quantity"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldState           = "state"
	FieldTraceID         = "trace-id"
	FieldUpdateID        = "update-id"
	FieldURL             = "url"
	FieldUserID          = "user-id"
)

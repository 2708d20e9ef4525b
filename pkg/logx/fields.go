package logx

const (
	FieldAppID           = "app-id"
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldAttempt         = "attempt"
	FieldCount           = "count"
	FieldDelay           = "delay"
	FieldDurationMs      = "duration-ms"
	FieldEndpoint        = "endpoint"
	FieldError           = "error"
	FieldHashName        = "hash-name"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldPage            = "page"
	FieldPassID          = "pass-id"
	FieldPath            = "path"
	FieldProgress        = "progress"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldStatus          = "status"
	FieldTable           = "table"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
	FieldUserAgent       = "user-agent"
)

package routes

var (
	APIDurationSecondsBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
)

const (
	// API route constants
	APIRouteAPI     = "/api"
	MetricsRouteAPI = "/metrics"

	// Operation names accepted by the /api dispatcher
	OpListUsers      = "listUsers"
	OpGetUser        = "getUser"
	OpGetMe          = "getMe"
	OpListSavedBooks = "listSavedBooks"
	OpRegister       = "register"
	OpLogin          = "login"
	OpSaveBook       = "saveBook"
	OpRemoveBook     = "removeBook"
	OpSearchBooks    = "searchBooks"

	// Content-Type constants
	ContentType     = "Content-Type"
	ContentTypeJson = "application/json"

	// Error messages
	ErrMethodNotAllowed       = "method not allowed"
	ErrInvalidContentType     = "content-Type must be application/json"
	ErrInvalidRequestBody     = "invalid request body"
	ErrValidationFailed       = "data validation failed"
	ErrUnknownOperation       = "unknown operation"
	ErrNotAuthenticated       = "not authenticated"
	ErrUserNotFound           = "user not found"
	ErrFailedToEncodeResponse = "failed to encode response"
	ErrFailedToGenerateToken  = "failed to generate session token"

	// metrics constants
	APIRequestsTotal       = "api_requests_total"
	APIRequestsTotalHelp   = "Total number of API requests received, by operation"
	APISuccessTotal        = "api_success_total"
	APISuccessTotalHelp    = "Total number of successful API requests, by operation"
	APIErrorsTotal         = "api_errors_total"
	APIErrorsTotalHelp     = "Total number of failed API requests, by operation and error kind"
	APIDurationSeconds     = "api_duration_seconds"
	APIDurationSecondsHelp = "Duration of API requests in seconds, by operation"
	RateLimitedTotal       = "rate_limited_total"
	RateLimitedTotalHelp   = "Total number of requests rejected by the rate limiter"

	// metrics label names
	OperationLabel = "operation"
	KindLabel      = "kind"
)

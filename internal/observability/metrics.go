package observability

// Metric names shared between registration in main and use sites.
const (
	MUsecaseRequests       = "usecase_requests_total"
	MUsecaseDuration       = "usecase_duration_seconds"
	MHTTPRequests          = "http_requests_total"
	MHTTPRequestDuration   = "http_request_duration_seconds"
	MActivityAppendFailed  = "activity_append_failed_total"
	MActivityAppendedTotal = "activity_appended_total"
)

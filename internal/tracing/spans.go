package tracing

// Span attribute keys.
const (
	AttrHTTPMethod     = "http.method"
	AttrHTTPPath       = "http.path"
	AttrHTTPRoute      = "http.route"
	AttrHTTPStatus     = "http.status_code"
	AttrHTTPRemoteAddr = "http.remote_addr"

	AttrPayloadID    = "payload.id"
	AttrPayloadPath  = "payload.path"
	AttrPayloadBytes = "payload.bytes"

	AttrErrorCode = "error.code"
)

// Span event names.
const (
	EventPayloadStored   = "payload.stored"
	EventPayloadRejected = "payload.rejected"
)

// TraceIDHeader carries the request's trace ID back to the sender.
const TraceIDHeader = "X-Trace-Id"

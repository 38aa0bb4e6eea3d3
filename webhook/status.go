package webhook

// Labels stored in Response.StatusMessage
const (
	StatusSuccess = "Success"
	StatusError   = "Error"
)

// Sentinel status codes for invocations that never produced an HTTP response
const (
	StatusNotConfigured  = 400
	StatusTransportError = 500
)

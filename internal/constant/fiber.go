package constant

const (
	// ContextKeyRequestID is the fiber.Ctx locals key holding the request id.
	ContextKeyRequestID = "requestid"

	// RequestIDHeader carries the request id back to the caller.
	RequestIDHeader = "X-Lotwise-Request-ID"
)

package clients

// ClientError is a non-retryable upstream failure (4xx other than the
// empty-on-404 path). The message carries the upstream response body.
type ClientError struct {
	Message    string
	StatusCode int
}

func (e *ClientError) Error() string { return e.Message }

// ServerError is a retryable upstream failure (any 5xx). The message carries
// the upstream response body.
type ServerError struct {
	Message    string
	StatusCode int
}

func (e *ServerError) Error() string { return e.Message }

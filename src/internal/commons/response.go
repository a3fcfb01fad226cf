package commons

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func ErrorResponse(message string, errors ...string) ErrorBody {
	return ErrorBody{
		Message: message,
		Errors:  errors,
	}
}

// StatusResponse is returned by the health endpoint.
type StatusResponse struct {
	Status string `json:"status"`
}

package errors

// GenericMessage is shown when neither the server nor the transport said anything useful.
const GenericMessage = "Something went wrong. Please try again."

// Message extracts a human-readable message from err: the server-provided
// message when there is one, else the transport error text, else generic.
func Message(err error, generic string) string {
	if generic == "" {
		generic = GenericMessage
	}
	if err == nil {
		return generic
	}
	if appErr := GetAppError(err); appErr != nil {
		if appErr.Message != "" {
			return appErr.Message
		}
		return generic
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return generic
}

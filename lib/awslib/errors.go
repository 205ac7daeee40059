package awslib

import (
	"errors"

	"github.com/aws/smithy-go"
)

// IsClientFault reports whether AWS rejected the request because of the caller, e.g. a missing bucket or bad credentials.
// Sending the same request again will not help.
func IsClientFault(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ServiceUnavailable", "InternalError", "SlowDown", "RequestTimeout":
			return false
		}
		return apiErr.ErrorFault() == smithy.FaultClient
	}

	return false
}

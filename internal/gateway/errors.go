package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/quillworks/quill/internal/model"
)

// Error type identifiers the backend sends alongside HTTP status codes.
const (
	typeInvalidCredentials = "user_invalid_credentials"
	typeUnauthorizedScope  = "general_unauthorized_scope"
)

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func errorFromResponse(status int, body []byte) error {
	var e apiError
	_ = json.Unmarshal(body, &e) // an unparsable body falls back to the status text

	msg := e.Message
	if msg == "" {
		msg = http.StatusText(status)
	}

	return model.NewError(kindForStatus(status, e.Type), msg)
}

func kindForStatus(status int, errType string) model.Kind {
	switch status {
	case http.StatusBadRequest:
		return model.KindValidation
	case http.StatusUnauthorized:
		// The backend answers 401 both for wrong credentials on login and
		// for anonymous calls to session-scoped endpoints. The error type
		// tells them apart; the session manager relies on that distinction.
		if errType == typeInvalidCredentials {
			return model.KindInvalidCredentials
		}
		return model.KindUnauthorized
	case http.StatusNotFound:
		return model.KindNotFound
	case http.StatusConflict:
		return model.KindDuplicateIdentity
	default:
		return model.KindTransport
	}
}

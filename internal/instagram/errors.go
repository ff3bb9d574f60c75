package instagram

import (
	"fmt"

	"github.com/orgball2608/insta-post-exporter/pkg/errors"
)

func InvalidInput(format string, args ...any) error {
	return errors.Newf(errors.ErrInvalidInput, format, args...)
}

func ProfileNotFound(username string) error {
	return errors.Newf(errors.ErrProfileNotFound,
		"profile '%s' not found (HTTP 404), make sure the account exists and is public", username)
}

func UnexpectedStatus(username string, status int) error {
	e := errors.Newf(errors.ErrUnexpectedStatus, "unexpected HTTP status %d while fetching '%s'", status, username)
	e.StatusCode = status
	return e
}

func NetworkFailure(username string, err error) error {
	return errors.WrapKind(err, errors.ErrNetworkFailure,
		fmt.Sprintf("network error while fetching profile '%s'", username))
}

func UnparseableResponse(username string, err error) error {
	return errors.WrapKind(err, errors.ErrUnparseableResponse,
		fmt.Sprintf("could not locate profile data for '%s' in JSON or HTML response", username))
}

func MissingUserData(step string) error {
	return errors.Newf(errors.ErrMissingUserData, "user data not found in document: missing %q", step)
}

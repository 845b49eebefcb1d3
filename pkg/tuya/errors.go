package tuya

import (
	"fmt"

	pkgerrors "github.com/Mause/tuya-graphing/pkg/errors"
)

// Error codes the client reacts to.
const (
	codeTokenInvalid = 1010
	codeTokenExpired = 1011
)

// APIError is a business-level failure: the HTTP exchange succeeded but the
// envelope carried success=false.
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cloud API error %d: %s", e.Code, e.Msg)
}

// Unwrap ties APIError into the shared sentinel hierarchy.
func (e *APIError) Unwrap() error {
	return pkgerrors.ErrAPIRequest
}

// isTokenError reports whether the failure means the cached access token is
// no longer usable and a fresh grant should be attempted.
func (e *APIError) isTokenError() bool {
	return e.Code == codeTokenInvalid || e.Code == codeTokenExpired
}

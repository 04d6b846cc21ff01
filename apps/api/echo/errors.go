package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/beacon/core"
)

var errHTTPNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")

// formErrors flattens validation failures to a {field: message} map for
// inline rendering. Returns nil when err is not a validation failure.
func formErrors(err error) map[string]string {
	switch origErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		fldErrs := make(map[string]string, len(origErr))
		for _, vErr := range origErr {
			fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
		}
		return fldErrs
	case *core.ValidationError:
		if flds := origErr.FieldErrors(); flds != nil {
			return flds
		}
		return map[string]string{"__all__": origErr.Error()}
	}
	return nil
}

// newAppHTTPErrorHandler renders error pages for anything handlers did not
// deal with inline: not-founds, stray validation failures and server errors.
func newAppHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if m, ok := origErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		case validator.ValidationErrors, *core.ValidationError:
			code = http.StatusBadRequest
			message = "invalid form submission"
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(code)
			logger.Error(message, errors.Wrap(err, message))
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}

		if !ctx.Response().Committed {
			var rErr error
			if ctx.Request().Method == http.MethodHead { // Issue #608
				rErr = ctx.NoContent(code)
			} else {
				rErr = ctx.Render(code, "error", echo.Map{"Code": code, "Message": message})
			}
			if rErr != nil {
				ctx.Echo().Logger.Error(rErr)
			}
		}
	}
}

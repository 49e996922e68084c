package errors

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// kindResponders is checked in order; the first kind err matches wins.
var kindResponders = []struct {
	kind    error
	respond func(c *gin.Context, message string)
}{
	{ErrNotFound, NotFound},
	{ErrValidation, BadRequest},
	{ErrConflict, Conflict},
	{ErrReferential, MissingReference},
	{ErrForbidden, Forbidden},
}

// RespondDomainError maps a service error to its HTTP response. Errors of
// unknown kind are logged and rendered as 500 without leaking details.
func RespondDomainError(c *gin.Context, log zerolog.Logger, err error) {
	for _, r := range kindResponders {
		if stderrors.Is(err, r.kind) {
			r.respond(c, CodeOf(err, ""))
			return
		}
	}

	log.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("unhandled error")
	InternalError(c, "")
}

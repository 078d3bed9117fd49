package tool

import (
	"errors"

	"geoedit/internal/logging"
)

var (
	ErrOutOfFrame        = errors.New("pointer outside the data frame")
	ErrMissingField      = errors.New("coordinate field not configured")
	ErrInconsistentState = errors.New("shape or vertex reference is stale")
	ErrInactive          = errors.New("tool inactive or no vertex layer")
)

func (b *base) skip(op string, err error) {
	logging.L().Debug().Str("tool", b.name).Str("op", op).Err(err).Msg("skipped")
}

package ecs

import "errors"

// Bind's closed error taxonomy. Absence (Get/Unbind/Has finding nothing) is
// not an error and is reported via the ordinary "comma ok" idiom instead.
var (
	// ErrInvalidKey is returned by Bind when called with the null entity id.
	ErrInvalidKey = errors.New("ecs: invalid key: the null id is not a valid entity")

	// ErrDeadEntity is returned by Bind when called on a killed or
	// never-created entity.
	ErrDeadEntity = errors.New("ecs: bind on dead entity: entity is not alive")
)

// BindErrorDescription returns a human-readable description of a Bind
// error, suitable for logging. Returns "" for nil, and err.Error() for an
// error outside the closed taxonomy above.
func BindErrorDescription(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidKey):
		return "bind failed: the supplied key is the reserved null entity id"
	case errors.Is(err, ErrDeadEntity):
		return "bind failed: the target entity was never created or has been killed"
	default:
		return err.Error()
	}
}

package inventory

import (
	"errors"
	"log/slog"
)

var (
	// ErrInvalidSize is returned by New for unusable capacities.
	ErrInvalidSize = errors.New("invalid inventory size")

	errNilItem       = errors.New("nil item")
	errAlreadyHeld   = errors.New("item already held")
	errFull          = errors.New("inventory full")
	errNotFound      = errors.New("item not in inventory")
	errInvalidSlot   = errors.New("slot index out of range")
	errWrongSlot     = errors.New("item type does not fit slot")
	errEmptySlot     = errors.New("equip slot empty")
	errNotEquippable = errors.New("item cannot be equipped")
	errNoSpawner     = errors.New("no world spawner")
	errSpawnFailed   = errors.New("world pickup not created")
	errReentrant     = errors.New("inventory mutated from a change handler")
)

// severity maps a failure to its log level. Full containers are routine,
// bad indices and re-entrant calls are caller bugs.
func severity(err error) slog.Level {
	switch {
	case errors.Is(err, errFull):
		return slog.LevelInfo
	case errors.Is(err, errInvalidSlot), errors.Is(err, errReentrant):
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

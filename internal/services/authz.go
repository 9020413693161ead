package services

import apperrors "spendtrack/internal/errors"

// ensureOwner is the single authorization guard applied before any read or
// mutation of an owned entity. The entity is looked up by ID first, so a
// missing ID stays NOT_FOUND while someone else's ID becomes FORBIDDEN; the
// two are kept distinct here and may be collapsed at the boundary if
// existence leakage is a concern.
func ensureOwner(ownerID, userID uint) error {
	if ownerID != userID {
		return apperrors.ErrForbidden
	}
	return nil
}

/*
errors.go - Centralized error types for the asset register

PURPOSE:
  All sentinel errors in one place for consistency and discoverability.
  The calculation engine itself never returns errors: configuration-absent
  and degenerate-input states degrade to zero results, and arithmetic
  invariants are clamped. These sentinels cover the surrounding service
  and persistence layers.

USAGE:
  if errors.Is(err, fixedasset.ErrAssetNotFound) {
      writeError(w, http.StatusNotFound, "Asset not found", err)
  }

SEE ALSO:
  - register/service.go: Returns these from lifecycle operations
  - store/sqlite/sqlite.go: Maps database states onto them
*/
package fixedasset

import "errors"

var (
	// ErrAssetNotFound is returned when a referenced asset doesn't exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrComponentNotFound is returned when a referenced component doesn't
	// exist on the asset.
	ErrComponentNotFound = errors.New("component not found")

	// ErrCategoryNotFound is returned when a referenced category doesn't
	// exist. Calculations never return this: an unresolved category yields
	// an all-zero result instead.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrLocationNotFound is returned when a referenced location doesn't exist.
	ErrLocationNotFound = errors.New("location not found")

	// ErrDuplicateAssetNumber is returned when registering an asset whose
	// asset number is already taken.
	ErrDuplicateAssetNumber = errors.New("duplicate asset number")

	// ErrComponentDisposed is returned when a lifecycle operation targets a
	// component that has already left the books. Disposal is terminal.
	ErrComponentDisposed = errors.New("component already disposed")

	// ErrUnknownStrategy is returned when a category configuration names a
	// tax strategy with no registered schedule.
	ErrUnknownStrategy = errors.New("unknown tax strategy")

	// ErrInvalidPeriod is returned when a reporting period ends before it starts.
	ErrInvalidPeriod = errors.New("invalid period: end before start")
)

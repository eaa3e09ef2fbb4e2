package filter

import "errors"

var (
	ErrEmptyName         = errors.New("filter name cannot be empty")
	ErrNoKeywords        = errors.New("filter must have at least one positive keyword")
	ErrInvalidPriceBand  = errors.New("price_min cannot exceed price_max")
	ErrInvalidTenderType = errors.New("invalid tender type")
	ErrInvalidLawType    = errors.New("invalid law type")
	ErrInvalidStage      = errors.New("invalid purchase stage")
	ErrFilterNotFound    = errors.New("filter not found")
	ErrNotOwner          = errors.New("filter does not belong to this user")
	ErrFiltersLimitReached = errors.New("user has reached their tier's filter limit")
)

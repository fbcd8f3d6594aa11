package models

import "errors"

var ErrInvalidJSON = errors.New("request body is not a valid JSON object")
var ErrMissingFields = errors.New("required booking fields are missing")

// ErrInvalidAmount indicates that the booking total cannot be expressed in
// whole minor currency units.
var ErrInvalidAmount = errors.New("booking total is not a valid amount")

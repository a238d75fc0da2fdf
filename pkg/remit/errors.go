package remit

import "errors"

// ErrInvalidDestination is returned when the destination address is not
// syntactically valid for the sender's network.
var ErrInvalidDestination = errors.New("invalid destination address")

// ErrSigningKeyUnavailable is returned when the sender's wallet carries no
// usable encrypted signing key (externally-custodied wallets cannot send
// through this pipeline).
var ErrSigningKeyUnavailable = errors.New("wallet signing key not available")

// ErrInvalidAmount is returned when the requested amount is zero.
var ErrInvalidAmount = errors.New("transfer amount must be positive")

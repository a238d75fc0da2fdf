package storage

import "errors"

// ErrWalletNotFound is returned when no wallet exists for the requested user or address.
var ErrWalletNotFound = errors.New("wallet not found")

// ErrTransactionNotFound is returned when no transaction exists with the requested ID or hash.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrTransactionNotCancellable is returned when a transaction cannot be cancelled, e.g. because a chain attempt is already underway or it is terminal.
var ErrTransactionNotCancellable = errors.New("transaction not in a cancellable state")

// ErrWalletExists is returned when creating a wallet for a user who already has one.
var ErrWalletExists = errors.New("wallet already exists for user")

// ErrVersionConflict is returned when a conditional wallet write loses a race with a concurrent writer.
var ErrVersionConflict = errors.New("wallet version conflict")

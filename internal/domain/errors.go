package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgAccountNotFound     = "account not found"
	ErrMsgDuplicateAccount    = "account already exists"
	ErrMsgInvalidCredentials  = "invalid email or password"
	ErrMsgVersionConflict     = "account was modified concurrently"
	ErrMsgInvalidSessionState = "invalid session transition"

	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Inventory errors
	ErrMsgNoItemsAvailable = "no items available"
	ErrMsgNoCasesAvailable = "no cases available"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Market errors
	ErrMsgListingNotFound = "listing not found"
	ErrMsgOwnListing      = "cannot buy your own listing"

	// Cooldown errors
	ErrMsgOnCooldown = "action on cooldown"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Transaction errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Account errors
	ErrAccountNotFound          = errors.New(ErrMsgAccountNotFound)
	ErrDuplicateAccount         = errors.New(ErrMsgDuplicateAccount)
	ErrInvalidCredentials       = errors.New(ErrMsgInvalidCredentials)
	ErrVersionConflict          = errors.New(ErrMsgVersionConflict)
	ErrInvalidSessionTransition = errors.New(ErrMsgInvalidSessionState)

	// Item errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Inventory errors
	ErrNoItemsAvailable = errors.New(ErrMsgNoItemsAvailable)
	ErrNoCasesAvailable = fmt.Errorf("%w: %s", ErrNoItemsAvailable, ErrMsgNoCasesAvailable)

	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Market errors
	ErrListingNotFound = errors.New(ErrMsgListingNotFound)
	ErrOwnListing      = errors.New(ErrMsgOwnListing)

	// Cooldown errors
	ErrOnCooldown = errors.New(ErrMsgOnCooldown)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

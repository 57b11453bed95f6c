package bplustree

import "errors"

// Sentinel errors returned by Verify and MustVerify. Use errors.Is to
// test for a specific violation; a wrapped instance also carries
// details such as the offending slot index, leaf depth or counts via
// the error string.
var (
	ErrOrderViolation     = errors.New("bplustree: key order violation")
	ErrOccupancyViolation = errors.New("bplustree: node occupancy violation")
	ErrChainBroken        = errors.New("bplustree: leaf chain broken")
	ErrCounterMismatch    = errors.New("bplustree: size counter mismatch")
	ErrDepthMismatch      = errors.New("bplustree: leaf depth mismatch")
)

// ErrDuplicateKey is returned by InsertUnique-style callers that need
// an error rather than a boolean when a non-duplicate tree already
// holds the key. The core Insert API itself never returns this; it
// reports the same condition via its (replaced bool) result.
var ErrDuplicateKey = errors.New("bplustree: duplicate key rejected")

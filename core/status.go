package core

import "strings"

// StatusPolicy decides the canonical status of a raw token missing from the
// mapping table.
type StatusPolicy int

const (
	// FailClosed maps unrecognized tokens to failed. Cash-in completion gates
	// money movement.
	FailClosed StatusPolicy = iota
	// FailOpen maps unrecognized tokens to unknown. Refund verification is
	// advisory polling.
	FailOpen
)

var rawStatusTable = map[RawStatus]Status{
	RawStatusPending:      StatusPending,
	RawStatusSucceeded:    StatusSucceeded,
	RawStatusSucceededAlt: StatusSucceeded,
	RawStatusFailed:       StatusFailed,
}

// MapRawStatus translates a provider token. Tokens are matched as emitted,
// surrounding whitespace aside.
func MapRawStatus(raw RawStatus, policy StatusPolicy) Status {
	if status, ok := rawStatusTable[RawStatus(strings.TrimSpace(string(raw)))]; ok {
		return status
	}
	if policy == FailOpen {
		return StatusUnknown
	}
	return StatusFailed
}

func CashInStatus(raw RawStatus) Status {
	return MapRawStatus(raw, FailClosed)
}

func RefundStatus(raw RawStatus) Status {
	return MapRawStatus(raw, FailOpen)
}

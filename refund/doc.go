// Package refund drives the Y-Note refund API: refund requests that push
// funds back to an Orange Money subscriber and the matching status lookups.
//
// Every call exchanges client credentials against the refund token host
// first. Verification maps unrecognized provider statuses to unknown.
package refund

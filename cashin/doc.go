// Package cashin implements the Orange Money USSD cash in flow: pay token
// initiation, payment submission and payment status verification.
package cashin

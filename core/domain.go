package core

import (
	"encoding/json"
	"strconv"
	"strings"
)

type Environment string

const (
	EnvironmentDev  Environment = "dev"
	EnvironmentProd Environment = "prod"
)

func (e Environment) Valid() bool {
	switch e {
	case EnvironmentDev, EnvironmentProd:
		return true
	default:
		return false
	}
}

// Status is the canonical outcome vocabulary exposed to callers.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusUnknown   Status = "unknown"
)

// RawStatus is the provider's own status token. Spelling is kept as emitted.
type RawStatus string

const (
	RawStatusPending      RawStatus = "PENDING"
	RawStatusSucceeded    RawStatus = "SUCCESSFULL"
	RawStatusSucceededAlt RawStatus = "SUCCESSFUL"
	RawStatusFailed       RawStatus = "FAILED"
)

// RefundStep is the refund provider stage marker, orthogonal to Status.
type RefundStep string

const (
	RefundStepInitializingTransfer RefundStep = "1"
	RefundStepTransferSent         RefundStep = "2"
)

type RefundMethod string

const RefundMethodOrangeMoney RefundMethod = "OrangeMoney"

type ProviderID string

const (
	ProviderOrangeMoney ProviderID = "orange_money"
	ProviderYNote       ProviderID = "ynote"
)

// AccessToken is issued fresh by every credential exchange and never reused
// across operations.
type AccessToken struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	Scope       string     `json:"scope,omitempty"`
	ExpiresIn   TTLSeconds `json:"expires_in"`
}

// TTLSeconds decodes expires_in values sent either as a number or a string.
type TTLSeconds int64

func (t *TTLSeconds) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*t = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(trimmed); err == nil {
		trimmed = strings.TrimSpace(unquoted)
		if trimmed == "" {
			*t = 0
			return nil
		}
	}
	var number json.Number = json.Number(trimmed)
	if parsed, err := number.Int64(); err == nil {
		*t = TTLSeconds(parsed)
		return nil
	}
	parsed, err := number.Float64()
	if err != nil {
		return err
	}
	*t = TTLSeconds(int64(parsed))
	return nil
}

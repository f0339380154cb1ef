package cashin

import "github.com/goliatone/go-mobile-money/core"

// InitializeParams describes one customer payment request.
type InitializeParams struct {
	// NotificationURL receives the provider's payment notification.
	NotificationURL string `json:"notificationUrl" validate:"required,url"`
	// Amount in whole currency units.
	Amount      int64  `json:"amount" validate:"required,min=1"`
	ReferenceID string `json:"referenceId" validate:"required"`
	Comment     string `json:"comment" validate:"required"`
	// PhoneNumber is the paying subscriber.
	PhoneNumber string `json:"phoneNumber" validate:"required,numeric,msisdn"`
}

type InitializeResult struct {
	Raw       map[string]any `json:"raw"`
	PayToken  string         `json:"payToken"`
	Status    core.Status    `json:"status"`
	RawStatus core.RawStatus `json:"rawStatus"`
}

type VerifyParams struct {
	// PayToken is the token returned by a successful initialization.
	PayToken string `json:"payToken" validate:"required"`
}

type VerifyResult struct {
	Raw       map[string]any `json:"raw"`
	Status    core.Status    `json:"status"`
	RawStatus core.RawStatus `json:"rawStatus"`
}

type payRequest struct {
	SubscriberMSISDN  string `json:"subscriberMsisdn"`
	NotifURL          string `json:"notifUrl"`
	OrderID           string `json:"orderId"`
	Description       string `json:"description"`
	Amount            string `json:"amount"`
	ChannelUserMSISDN string `json:"channelUserMsisdn"`
	PayToken          string `json:"payToken"`
	PIN               string `json:"pin"`
}

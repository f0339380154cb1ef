package refund

import "github.com/goliatone/go-mobile-money/core"

// Params describes one refund to a subscriber.
type Params struct {
	Webhook string `json:"webhook" validate:"required,url"`
	// Amount in whole currency units. The contractual commission is deducted
	// by the provider.
	Amount        int64             `json:"amount" validate:"required,min=1"`
	CustomerPhone string            `json:"customerPhone" validate:"required,numeric,msisdn"`
	CustomerName  string            `json:"customerName" validate:"required"`
	RefundMethod  core.RefundMethod `json:"refundMethod,omitempty" validate:"omitempty,oneof=OrangeMoney"`
}

type Result struct {
	Raw       map[string]any `json:"raw"`
	MessageID string         `json:"messageId"`
}

type VerifyParams struct {
	MessageID string `json:"messageId" validate:"required"`
}

type VerifyResult struct {
	Raw        map[string]any  `json:"raw"`
	RefundStep core.RefundStep `json:"refundStep"`
	Status     core.Status     `json:"status"`
	RawStatus  core.RawStatus  `json:"rawStatus"`
}

// refundRequest keeps the provider's field order.
type refundRequest struct {
	CustomerKey        string `json:"customerkey"`
	CustomerSecret     string `json:"customersecret"`
	ChannelUserMSISDN  string `json:"channelUserMsisdn"`
	PIN                string `json:"pin"`
	Webhook            string `json:"webhook"`
	Amount             string `json:"amount"`
	FinalCustomerPhone string `json:"final_customer_phone"`
	FinalCustomerName  string `json:"final_customer_name"`
	RefundMethod       string `json:"refund_method"`
}

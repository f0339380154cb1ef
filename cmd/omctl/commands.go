package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	mobilemoney "github.com/goliatone/go-mobile-money"
	"github.com/goliatone/go-mobile-money/cashin"
	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/refund"
)

type app struct {
	configPath  string
	environment string
	options     []mobilemoney.Option
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "omctl",
		Short:         "Orange Money cash in and Y-Note refund client",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file (defaults to $"+envConfigPath+")")
	rootCmd.PersistentFlags().StringVarP(&a.environment, "env", "e", "", "Environment override (dev, prod)")

	rootCmd.AddCommand(cashInCmd(a))
	rootCmd.AddCommand(refundCmd(a))
	return rootCmd
}

func cashInCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cashin",
		Short: "Collect payments through the USSD cash in flow",
	}

	var params cashin.InitializeParams
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a cash in and push the USSD prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, svc *mobilemoney.Service) (any, error) {
				return svc.InitializeCashIn(ctx, params)
			})
		},
	}
	initCmd.Flags().StringVar(&params.NotificationURL, "notification-url", "", "URL notified by the provider")
	initCmd.Flags().Int64Var(&params.Amount, "amount", 0, "Amount in whole currency units")
	initCmd.Flags().StringVar(&params.ReferenceID, "reference", "", "Merchant order reference")
	initCmd.Flags().StringVar(&params.Comment, "comment", "", "Description shown to the subscriber")
	initCmd.Flags().StringVar(&params.PhoneNumber, "phone", "", "Subscriber MSISDN")

	verifyCmd := &cobra.Command{
		Use:   "verify [pay-token]",
		Short: "Look up the status of a cash in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, svc *mobilemoney.Service) (any, error) {
				return svc.VerifyCashIn(ctx, cashin.VerifyParams{PayToken: args[0]})
			})
		},
	}

	cmd.AddCommand(initCmd, verifyCmd)
	return cmd
}

func refundCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refund",
		Short: "Send refunds through Y-Note",
	}

	var params refund.Params
	var method string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Request a refund to a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params.RefundMethod = core.RefundMethod(method)
			return a.run(cmd, func(ctx context.Context, svc *mobilemoney.Service) (any, error) {
				return svc.CreateRefund(ctx, params)
			})
		},
	}
	createCmd.Flags().StringVar(&params.Webhook, "webhook", "", "URL notified when the refund settles")
	createCmd.Flags().Int64Var(&params.Amount, "amount", 0, "Amount in whole currency units")
	createCmd.Flags().StringVar(&params.CustomerPhone, "phone", "", "Customer MSISDN")
	createCmd.Flags().StringVar(&params.CustomerName, "name", "", "Customer name")
	createCmd.Flags().StringVar(&method, "method", string(core.RefundMethodOrangeMoney), "Refund method")

	verifyCmd := &cobra.Command{
		Use:   "verify [message-id]",
		Short: "Look up the status of a refund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, svc *mobilemoney.Service) (any, error) {
				return svc.VerifyRefund(ctx, refund.VerifyParams{MessageID: args[0]})
			})
		},
	}

	cmd.AddCommand(createCmd, verifyCmd)
	return cmd
}

func (a *app) run(cmd *cobra.Command, op func(context.Context, *mobilemoney.Service) (any, error)) error {
	svc, err := a.service()
	if err != nil {
		return a.fail(cmd, err)
	}
	result, err := op(cmd.Context(), svc)
	if err != nil {
		return a.fail(cmd, err)
	}
	return writeJSON(cmd.OutOrStdout(), result)
}

func (a *app) fail(cmd *cobra.Command, err error) error {
	envelope := mobilemoney.ToServiceError(err)
	if envelope == nil {
		return err
	}
	payload := map[string]any{
		"category":  fmt.Sprint(envelope.Category),
		"code":      envelope.Code,
		"text_code": envelope.TextCode,
		"message":   envelope.Message,
	}
	if fields := envelope.AllValidationErrors(); len(fields) > 0 {
		payload["fields"] = fields
	}
	if writeErr := writeJSON(cmd.ErrOrStderr(), payload); writeErr != nil {
		return writeErr
	}
	return err
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

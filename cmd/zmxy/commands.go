package main

import (
	"github.com/spf13/cobra"

	"github.com/philiph/zmxy"
	"github.com/philiph/zmxy/internal/core/domain"
)

// callOutput is the printed form of a signed business call.
type callOutput struct {
	Params        zmxy.Params         `json:"params"`
	StatusCode    int                 `json:"status_code"`
	Result        zmxy.Result         `json:"result"`
	Data          any                 `json:"data,omitempty"`
	BusinessError *zmxy.BusinessError `json:"business_error,omitempty"`
}

// printCall prints res, or returns err. A business failure is printed and
// then reported through errBusinessFailure.
func printCall[T any](cmd *cobra.Command, res *domain.Call[T], err error) error {
	if err != nil {
		return err
	}
	out := callOutput{
		Params:        res.Params,
		Result:        res.Result,
		BusinessError: res.BusinessError,
	}
	if res.Request != nil {
		out.StatusCode = res.Request.StatusCode
	}
	if res.Data != nil {
		out.Data = res.Data
	}
	if err := printJSON(cmd, out); err != nil {
		return err
	}
	if res.BusinessError != nil {
		return errBusinessFailure
	}
	return nil
}

func (a *app) authorizeURLCmd() *cobra.Command {
	var id zmxy.AuthIdentity
	var channel, state string

	cmd := &cobra.Command{
		Use:   "authorize-url",
		Short: "Build the signed authorization redirect for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.client.AuthorizeURLWithState(id, channel, state)
			if err != nil {
				return err
			}
			return printJSON(cmd, r)
		},
	}
	cmd.Flags().StringVar(&id.Mobile, "mobile", "", "mobile number")
	cmd.Flags().StringVar(&id.Name, "name", "", "full name")
	cmd.Flags().StringVar(&id.CertNo, "cert-no", "", "certificate number")
	cmd.Flags().StringVar(&id.CertType, "cert-type", "", "certificate type (default IDENTITY_CARD)")
	cmd.Flags().StringVar(&channel, "channel", "", `channel, "h5" for mobile web`)
	cmd.Flags().StringVar(&state, "state", "", "opaque state echoed to the callback")
	return cmd
}

func (a *app) openIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open-id <token>",
		Short: "Decrypt the open id token from the authorize callback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			openID, err := a.client.OpenID(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{"open_id": openID})
		},
	}
}

func (a *app) ivsCmd() *cobra.Command {
	var q zmxy.IvsQuery

	cmd := &cobra.Command{
		Use:   "ivs",
		Short: "Anti-fraud checks on personal details",
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&q.Name, "name", "", "full name")
	flags.StringVar(&q.CertNo, "cert-no", "", "certificate number")
	flags.StringVar(&q.CertType, "cert-type", "", "certificate type (default IDENTITY_CARD)")
	flags.StringVar(&q.Mobile, "mobile", "", "mobile number")
	flags.StringVar(&q.Email, "email", "", "email address")
	flags.StringVar(&q.BankCard, "bank-card", "", "bank card number")
	flags.StringVar(&q.Address, "address", "", "postal address")
	flags.StringVar(&q.IP, "ip", "", "client IP address")
	flags.StringVar(&q.Mac, "mac", "", "device MAC address")
	flags.StringVar(&q.WiFiMac, "wifi-mac", "", "MAC address of the connected Wi-Fi access point")
	flags.StringVar(&q.IMEI, "imei", "", "device IMEI")
	flags.StringVar(&q.IMSI, "imsi", "", "SIM IMSI")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "verify",
			Short: "Verify the details against the anti-fraud database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := a.client.VerifyIvs(cmd.Context(), q)
				return printCall(cmd, res, err)
			},
		},
		&cobra.Command{
			Use:   "score",
			Short: "Fetch the anti-fraud score",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := a.client.IvsScore(cmd.Context(), q)
				return printCall(cmd, res, err)
			},
		},
		&cobra.Command{
			Use:   "watchlist",
			Short: "Check the anti-fraud risk list",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := a.client.IvsWatchlist(cmd.Context(), q)
				return printCall(cmd, res, err)
			},
		},
	)
	return cmd
}

func (a *app) watchlistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watchlist <open_id>",
		Short: "Check an authorized user against the industry watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.VerifyWatchlist(cmd.Context(), args[0])
			return printCall(cmd, res, err)
		},
	}
}

func (a *app) scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <open_id>",
		Short: "Fetch the credit score of an authorized user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.CreditScore(cmd.Context(), args[0])
			return printCall(cmd, res, err)
		},
	}
}

func (a *app) certCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cert",
		Short: "Face certification",
	}

	var name, certNo string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Start a certification and print its biz_no",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.InitCertification(cmd.Context(), name, certNo)
			return printCall(cmd, res, err)
		},
	}
	initCmd.Flags().StringVar(&name, "name", "", "full name")
	initCmd.Flags().StringVar(&certNo, "cert-no", "", "certificate number")
	initCmd.MarkFlagRequired("name")
	initCmd.MarkFlagRequired("cert-no")

	queryCmd := &cobra.Command{
		Use:   "query <biz_no>",
		Short: "Fetch the outcome of a certification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.QueryCertification(cmd.Context(), args[0])
			return printCall(cmd, res, err)
		},
	}

	var returnURL string
	urlCmd := &cobra.Command{
		Use:   "url <biz_no>",
		Short: "Build the signed certification page redirect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.client.CertificationURL(args[0], returnURL)
			if err != nil {
				return err
			}
			return printJSON(cmd, r)
		},
	}
	urlCmd.Flags().StringVar(&returnURL, "return-url", "", "where the provider sends the user afterwards")

	cmd.AddCommand(initCmd, queryCmd, urlCmd)
	return cmd
}

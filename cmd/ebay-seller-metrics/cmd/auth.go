package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func authCmd() *cobra.Command {
	authRoot := &cobra.Command{
		Use:   "auth",
		Short: "Authorize the application with eBay",
		Long: "Obtain a refresh token without running the server: print the consent\n" +
			"URL, then exchange the code eBay appends to the redirect. Store the\n" +
			"printed refresh_token as ebay.refresh_token.",
	}

	authRoot.AddCommand(
		authURLCmd(),
		authExchangeCmd(),
		authStatusCmd(),
	)

	return authRoot
}

func authURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "Print the eBay consent URL",
		Long: `Print the eBay consent URL. Copy the code from the redirect and pass it to
"auth exchange". A running server only completes flows started at its own
/oauth/authorize, so its callback rejects this URL's state.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			u, err := a.oauth.AuthorizeURL(uuid.NewString())
			if err != nil {
				return err
			}
			fmt.Println(u)
			return nil
		},
	}
}

func authExchangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exchange <code>",
		Short: "Exchange an authorization code for a token record",
		Args:  cobra.ExactArgs(1),
		Example: `  ebay-seller-metrics auth exchange 'v^1.1#i^1#...'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			token, err := a.oauth.ExchangeCode(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("exchanging code: %w", err)
			}
			if token.RefreshToken() == "" {
				fmt.Fprintln(os.Stderr, "warning: eBay returned no refresh token")
			}
			return outputJSON(token)
		},
	}
}

func authStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the running server holds a token",
		RunE: func(_ *cobra.Command, _ []string) error {
			st, err := newClient().GetAuthStatus(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(st)
			}
			tw := newTabWriter(os.Stdout)
			tw.writef("Authorized:\t%v\n", st.Authorized)
			tw.writef("Refreshable:\t%v\n", st.Refreshable)
			if st.ExpiresAt != nil {
				tw.writef("Expires:\t%s\n", st.ExpiresAt.Local().Format(timeLayout))
			}
			return tw.finish()
		},
	}
}

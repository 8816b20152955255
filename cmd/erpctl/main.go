package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/daacooerp/erpclient/pkg/api"
	"github.com/daacooerp/erpclient/pkg/auth"
	"github.com/daacooerp/erpclient/pkg/config"
	"github.com/daacooerp/erpclient/pkg/logging"
	"github.com/daacooerp/erpclient/pkg/store"
	"github.com/daacooerp/erpclient/pkg/transport"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "erpctl: %v\n", err)
		os.Exit(1)
	}
}

// app carries the wired client pieces shared by every subcommand.
type app struct {
	cfg       *config.Config
	client    *transport.Client
	session   *store.UserStore
	companies *store.CompanyStore
	inventory *store.InventoryStore
	orders    *store.OrderStore
	finance   *store.FinanceStore
	ai        *api.AIAPI
}

func newRootCommand() *cobra.Command {
	var application *app

	cmd := &cobra.Command{
		Use:           "erpctl",
		Short:         "Command-line client for the ERP service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			application, err = newApp()
			return err
		},
	}

	cmd.AddCommand(
		newLoginCommand(&application),
		newLogoutCommand(&application),
		newWhoamiCommand(&application),
		newCompaniesCommand(&application),
		newOrdersCommand(&application),
		newInventoryCommand(&application),
		newFinanceCommand(&application),
		newAICommand(&application),
	)
	return cmd
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Output: os.Stderr,
	})
	logging.SetDefault(logger)

	tokens, err := newTokenStore(cfg)
	if err != nil {
		return nil, err
	}

	client := transport.NewClient(&transport.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Tokens:  tokens,
		Logger:  logger,
	})

	session := store.NewUserStore(api.NewUserAPI(client), tokens)
	session.AttachTo(client)

	return &app{
		cfg:       cfg,
		client:    client,
		session:   session,
		companies: store.NewCompanyStore(api.NewCompanyAPI(client)),
		inventory: store.NewInventoryStore(api.NewInventoryAPI(client)),
		orders:    store.NewOrderStore(api.NewOrderAPI(client), true),
		finance:   store.NewFinanceStore(api.NewFinanceAPI(client)),
		ai:        api.NewAIAPI(client),
	}, nil
}

// newTokenStore picks the credential backend: redis when configured, a file
// otherwise.
func newTokenStore(cfg *config.Config) (auth.TokenStore, error) {
	if cfg.RedisURL != "" {
		return auth.NewRedisTokenStoreFromURL(cfg.RedisURL)
	}

	path := cfg.TokenFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".erpctl", "token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return auth.NewFileTokenStore(path), nil
}

func newLoginCommand(application **app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Authenticate and persist the session credential",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *application
			if err := a.session.Login(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged in")
			return nil
		},
	}
}

func newLogoutCommand(application **app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and drop the credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *application
			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCommand(application **app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *application
			profile, err := a.session.FetchProfile(cmd.Context())
			if err != nil {
				return err
			}
			if err := printJSON(cmd, profile); err != nil {
				return err
			}
			if expiry := a.session.SessionExpiry(); !expiry.IsZero() {
				fmt.Fprintf(cmd.OutOrStdout(), "session expires %s\n", expiry.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newCompaniesCommand(application **app) *cobra.Command {
	params := &api.PageParams{Size: 10}
	cmd := &cobra.Command{
		Use:   "companies",
		Short: "List partner companies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *application
			items, err := a.companies.FetchCompanies(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}
	cmd.Flags().IntVar(&params.Page, "page", 0, "zero-based page number")
	cmd.Flags().IntVar(&params.Size, "size", 10, "page size")
	return cmd
}

func newOrdersCommand(application **app) *cobra.Command {
	var orderType string
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List customer or purchase orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *application
			var items interface{}
			var err error
			if orderType == "purchase" {
				items, err = a.orders.FetchPurchaseOrders(cmd.Context(), nil)
			} else {
				items, err = a.orders.FetchCustormerOrders(cmd.Context(), nil)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}
	cmd.Flags().StringVar(&orderType, "type", "customer", "order type: customer or purchase")
	return cmd
}

func newInventoryCommand(application **app) *cobra.Command {
	return &cobra.Command{
		Use:   "inventory",
		Short: "List stock records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *application
			items, err := a.inventory.FetchInventories(cmd.Context(), nil)
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}
}

func newFinanceCommand(application **app) *cobra.Command {
	return &cobra.Command{
		Use:   "finance [year]",
		Short: "Show the finance ledger for a year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *application
			year := 0
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				year = parsed
			}
			records, err := a.finance.FetchFinance(cmd.Context(), year)
			if err != nil {
				return err
			}
			return printJSON(cmd, records)
		},
	}
}

func newAICommand(application **app) *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "ai <query>",
		Short: "Run a natural-language analytics query with retry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *application
			env, err := a.ai.ParseWithRetry(cmd.Context(), args[0], confirmed, a.cfg.AIMaxRetries)
			if err != nil {
				return err
			}
			var payload interface{}
			if err := env.DecodeData(&payload); err != nil {
				return err
			}
			return printJSON(cmd, payload)
		},
	}
	cmd.Flags().BoolVar(&confirmed, "confirmed", false, "confirm execution of a previously parsed action")
	return cmd
}

func printJSON(cmd *cobra.Command, value interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

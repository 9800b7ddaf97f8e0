package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/Adda-Baaj/foodstack-client/internal/app"
	"github.com/Adda-Baaj/foodstack-client/internal/config"
	"github.com/Adda-Baaj/foodstack-client/internal/logger"
	"github.com/Adda-Baaj/foodstack-client/pkg/endpoints"
)

// cli holds the runtime shared by subcommands for one invocation.
type cli struct {
	app *app.App
}

// execute runs the command line in args. The app is closed even when the
// command fails, which cobra's post-run hooks do not guarantee.
func execute(ctx context.Context, args []string, out io.Writer) error {
	c := &cli{}
	root := c.rootCmd()
	root.SetArgs(args)
	if out != nil {
		root.SetOut(out)
	}
	defer c.close()
	return root.ExecuteContext(ctx)
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "foodstack",
		Short:         "Command line client for the Foodstack API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}

	root.AddCommand(c.loginCmd(), c.logoutCmd(), c.statusCmd(), c.callCmd(), c.endpointsCmd())
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	logger.DebugObj("foodstack starting", "config", map[string]any{
		"base_url":       cfg.BaseURL,
		"storage_type":   cfg.StorageType,
		"endpoints_file": cfg.EndpointsFile,
		"command":        cmd.Name(),
	})

	a, err := app.NewApp(cmd.Context(), cfg, logger.NewZap(log))
	if err != nil {
		logger.ErrorObj("failed to initialize app", "error", err)
		_ = logger.Close()
		return err
	}
	c.app = a
	return nil
}

func (c *cli) close() {
	if c.app == nil {
		return
	}
	if err := c.app.Close(); err != nil {
		logger.WarnObj("app close failed", "error", err.Error())
	}
	c.app = nil
	_ = logger.Close()
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := c.app.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged in")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether an access token is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := "logged out"
			if c.app.IsLoggedIn(cmd.Context()) {
				state = "logged in"
			}
			fmt.Fprintln(cmd.OutOrStdout(), state)
			return nil
		},
	}
}

func (c *cli) endpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List catalog endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, e := range c.app.Catalog().All() {
				fmt.Fprintf(out, "%s\t%s %s\t%s\n", e.ID, e.Method, e.Path, e.Auth)
			}
			return nil
		},
	}
}

func (c *cli) callCmd() *cobra.Command {
	var (
		pathParams, queryParams, headerParams []string
		body                                  string
	)
	cmd := &cobra.Command{
		Use:   "call <endpoint>",
		Short: "Invoke a catalog endpoint and print the decoded result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := buildCallParams(pathParams, queryParams, headerParams, body)
			if err != nil {
				return err
			}
			res, err := c.app.Call(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res.Data)
		},
	}
	cmd.Flags().StringArrayVar(&pathParams, "path", nil, "path parameter key=value (repeatable)")
	cmd.Flags().StringArrayVar(&queryParams, "query", nil, "query parameter key=value (repeatable, repeated keys become sequences)")
	cmd.Flags().StringArrayVar(&headerParams, "header", nil, "header key=value (repeatable)")
	cmd.Flags().StringVar(&body, "body", "", "JSON request body")
	return cmd
}

func buildCallParams(path, query, header []string, body string) (endpoints.CallParams, error) {
	var (
		params endpoints.CallParams
		err    error
	)
	if params.Path, err = parseKV(path); err != nil {
		return params, fmt.Errorf("--path: %w", err)
	}
	if params.Query, err = parseKV(query); err != nil {
		return params, fmt.Errorf("--query: %w", err)
	}
	if params.Header, err = parseKV(header); err != nil {
		return params, fmt.Errorf("--header: %w", err)
	}
	if body = strings.TrimSpace(body); body != "" {
		var payload any
		if err := sonic.ConfigStd.UnmarshalFromString(body, &payload); err != nil {
			return params, fmt.Errorf("--body is not valid JSON: %w", err)
		}
		params.Body = payload
	}
	return params, nil
}

// parseKV turns key=value pairs into a map. A key given more than once maps
// to a slice of its values in order.
func parseKV(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		switch existing := out[key].(type) {
		case nil:
			out[key] = value
		case []string:
			out[key] = append(existing, value)
		case string:
			out[key] = []string{existing, value}
		}
	}
	return out, nil
}

func printResult(w io.Writer, data any) error {
	if data == nil {
		fmt.Fprintln(w, "(no content)")
		return nil
	}
	raw, err := sonic.ConfigStd.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(w, string(raw))
	return nil
}

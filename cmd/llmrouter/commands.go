package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"llmrouter/internal/router"
	"llmrouter/pkg/types"
)

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSendCmd(a *app) *cobra.Command {
	var system string
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "send <message...>",
		Short:   "Send one message to the configured backend and print the reply",
		Example: "  llmrouter send --system \"Answer in French.\" Write a haiku about the ocean.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.openManager()
			if err != nil {
				return err
			}
			defer mgr.Close()
			var turns []types.ChatTurn
			if system != "" {
				turns = append(turns, types.ChatTurn{Role: types.RoleSystem, Content: system})
			}
			turns = append(turns, types.ChatTurn{Role: types.RoleUser, Content: strings.Join(args, " ")})
			res, err := mgr.Chat(cmd.Context(), turns)
			if err != nil {
				return err
			}
			if asJSON {
				return a.printJSON(res.Response())
			}
			fmt.Fprintln(a.out, res.String())
			if !res.OK() {
				return fmt.Errorf("dispatch failed (%s)", res.Err.Kind)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&system, "system", "", "System prompt sent before the message")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	return cmd
}

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "classify <url...>",
		Short:   "Show how endpoint URLs are classified and where they fall back to",
		Example: "  llmrouter classify http://localhost:11434/api/chat https://api.mistral.ai/v1/chat/completions",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "URL\tKIND\tFALLBACK")
			for _, u := range args {
				fallback := "-"
				if steps := router.Plan(u); len(steps) > 1 {
					fallback = steps[1].URL
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", u, router.Classify(u), fallback)
			}
			return tw.Flush()
		},
	}
}

func newTestConnectionCmd(a *app) *cobra.Command {
	var endpoint, model, apiKey string
	cmd := &cobra.Command{
		Use:   "test-connection",
		Short: "Send a canned prompt to the configured backend, or to the one given by flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.openManager()
			if err != nil {
				return err
			}
			defer mgr.Close()
			var override *types.ServiceConfig
			if endpoint != "" {
				override = &types.ServiceConfig{EndpointURL: endpoint, ModelName: model, APIKey: apiKey}
			}
			ct, err := mgr.TestConnection(cmd.Context(), override)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, ct.Message)
			if !ct.Success {
				return fmt.Errorf("connection test failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Endpoint URL to test instead of the stored one")
	cmd.Flags().StringVar(&model, "model", "", "Model name used with --endpoint")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key used with --endpoint")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or replace the stored service configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("config requires a subcommand: show|set")
		},
	}
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the service configuration with the API key redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.openManager()
			if err != nil {
				return err
			}
			defer mgr.Close()
			cfg, err := mgr.ServiceConfig(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(cfg.Redacted())
		},
	}
	var next types.ServiceConfig
	set := &cobra.Command{
		Use:     "set",
		Short:   "Save the service configuration; unset flags keep their stored values",
		Example: "  llmrouter config set --endpoint http://localhost:11434/api/chat --model llama3",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.openManager()
			if err != nil {
				return err
			}
			defer mgr.Close()
			cfg, err := mgr.ServiceConfig(cmd.Context())
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("endpoint") {
				cfg.EndpointURL = next.EndpointURL
			}
			if fs.Changed("model") {
				cfg.ModelName = next.ModelName
			}
			if fs.Changed("api-key") {
				cfg.APIKey = next.APIKey
			}
			if fs.Changed("image-endpoint") {
				cfg.ImageEndpointURL = next.ImageEndpointURL
			}
			if fs.Changed("image-model") {
				cfg.ImageModelName = next.ImageModelName
			}
			if err := mgr.SaveServiceConfig(cmd.Context(), cfg); err != nil {
				return err
			}
			return a.printJSON(cfg.Redacted())
		},
	}
	set.Flags().StringVar(&next.EndpointURL, "endpoint", "", "Text generation endpoint URL")
	set.Flags().StringVar(&next.ModelName, "model", "", "Model name")
	set.Flags().StringVar(&next.APIKey, "api-key", "", "API key (stored in plaintext)")
	set.Flags().StringVar(&next.ImageEndpointURL, "image-endpoint", "", "Image generation endpoint URL")
	set.Flags().StringVar(&next.ImageModelName, "image-model", "", "Image generation model name")
	cmd.AddCommand(show, set)
	return cmd
}

func newDiscoverCmd(a *app) *cobra.Command {
	var hosts string
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Probe for local Ollama and LM Studio servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			found := router.Discover(cmd.Context(), nil, splitCSV(hosts))
			if len(found) == 0 {
				fmt.Fprintln(a.out, "no local backends found")
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tCHAT URL\tMODELS")
			for _, b := range found {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Kind, b.ChatURL, strings.Join(b.Models, ","))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&hosts, "hosts", "localhost", "Comma-separated hosts to probe")
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent exchanges, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.openManager()
			if err != nil {
				return err
			}
			defer mgr.Close()
			out, err := mgr.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tKIND\tATTEMPTS\tSTATUS\tLATENCY\tREPLY")
			for _, ex := range out {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
					ex.CreatedAt.Local().Format(time.DateTime), ex.Kind, ex.Attempts, ex.Status,
					time.Duration(ex.LatencyMS)*time.Millisecond, truncate(ex.Reply, 60))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of exchanges")
	return cmd
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

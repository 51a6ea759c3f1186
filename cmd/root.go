package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/session"
	"github.com/eventify/eventify-web/service"
)

var tokenFile string

var rootCmd = &cobra.Command{
	Use:   "eventify",
	Short: "Eventify web frontend and account tools",
	Long: `eventify serves the Eventify web frontend and offers account commands
against the same API from the terminal.

The CLI keeps its credential in ~/.eventify/auth.json unless --token-file
points somewhere else.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "credential file (default is $HOME/.eventify/auth.json)")
}

// cliSession builds a session store backed by the token file and restores
// any credential saved by an earlier login.
func cliSession(ctx context.Context) (*session.Store, *api.Client, error) {
	config, err := service.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	path := tokenFile
	if path == "" {
		if path, err = session.DefaultTokenPath(); err != nil {
			return nil, nil, err
		}
	}

	client := api.New(config.API.BaseURL, api.WithTimeout(config.API.Timeout))
	store := session.New(session.NewFileSlot(path), client)
	store.Restore(ctx)
	return store, client, nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"seabattle/internal/protocol"
)

func newLoginCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Register a login and store the session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			replies, err := client.Exchange(protocol.Message{
				Op:     protocol.OpLogin,
				Fields: []string{name},
			})
			if err != nil {
				return err
			}

			// Save identity for the following commands
			if len(replies[0].Fields) == 1 {
				if err := cfg.SaveIdentity(replies[0].Fields[0]); err != nil {
					return fmt.Errorf("failed to save identity: %w", err)
				}
			}

			NewOutput(cfg.Output).PrintReplies(replies)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Login name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Fetch queued notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Identity == "" {
				return fmt.Errorf("no identity: run 'seabattle login' first")
			}

			replies, err := client.Exchange(protocol.Message{
				Op:     protocol.OpPoll,
				Fields: []string{cfg.Identity},
			})
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintReplies(replies)
			return nil
		},
	}
}

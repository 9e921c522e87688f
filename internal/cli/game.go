package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"seabattle/internal/model"
	"seabattle/internal/protocol"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameInviteCmd())
	cmd.AddCommand(newGameFieldCmd())
	cmd.AddCommand(newGameMoveCmd())

	return cmd
}

// exchange sends an identified request and prints the reply batch.
func exchange(op byte, fields ...string) error {
	if cfg.Identity == "" {
		return fmt.Errorf("no identity: run 'seabattle login' first")
	}

	replies, err := client.Exchange(protocol.Message{
		Op:     op,
		Fields: append([]string{cfg.Identity}, fields...),
	})
	if err != nil {
		return err
	}

	NewOutput(cfg.Output).PrintReplies(replies)
	return nil
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exchange(protocol.OpCreateGame, args[0])
		},
	}
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List open games",
		RunE: func(cmd *cobra.Command, args []string) error {
			return exchange(protocol.OpListGames)
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <name>",
		Short: "Join an open game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exchange(protocol.OpJoinGame, args[0])
		},
	}
}

func newGameInviteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invite <login> <game>",
		Short: "Invite another player to a game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exchange(protocol.OpInvitePlayer, args[0], args[1])
		},
	}
}

func newGameFieldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field <game> <board-file>",
		Short: "Submit your fleet from a board file",
		Long: `Submit your fleet for a game. The board file holds ten lines of ten
characters each: '.' for sea and '@' for a ship cell.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readBoardFile(args[1])
			if err != nil {
				return err
			}
			return exchange(protocol.OpSubmitField, append([]string{args[0]}, rows...)...)
		},
	}
	return cmd
}

func newGameMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <game> <row> <col>",
		Short: "Fire at the opponent's half",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col := args[1], args[2]
			if len(row) != 1 || len(col) != 1 {
				return fmt.Errorf("row and col must be single digits 0-9")
			}
			return exchange(protocol.OpMakeMove, args[0], row+col)
		},
	}
}

func readBoardFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}

	rows := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(rows) != model.FieldRows {
		return nil, fmt.Errorf("board file must hold exactly %d rows, got %d", model.FieldRows, len(rows))
	}
	return rows, nil
}

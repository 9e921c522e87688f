package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"seabattle/internal/protocol"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintReplies renders a decoded reply batch. The first message is the
// direct reply to the issued request, the rest are notifications.
func (o *Output) PrintReplies(replies []protocol.Message) {
	if o.format == "json" {
		o.printJSONReplies(replies)
		return
	}

	for i, msg := range replies {
		// An idle ack followed by notifications carries no news itself.
		if i == 0 && msg.Op == protocol.OpPoll && len(replies) > 1 {
			continue
		}
		o.printText(msg, i > 0)
	}
}

func (o *Output) printJSONReplies(replies []protocol.Message) {
	type jsonMsg struct {
		Op     string   `json:"op"`
		Fields []string `json:"fields,omitempty"`
	}

	out := make([]jsonMsg, 0, len(replies))
	for _, msg := range replies {
		out = append(out, jsonMsg{Op: string(msg.Op), Fields: msg.Fields})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

func (o *Output) printText(msg protocol.Message, notification bool) {
	prefix := ""
	if notification {
		prefix = "* "
	}

	switch msg.Op {
	case protocol.OpLogin:
		fmt.Printf("%sLogged in, identity: %s\n", prefix, field(msg, 0))
	case protocol.OpCreateGame:
		fmt.Printf("%sGame created\n", prefix)
	case protocol.OpListGames:
		if len(msg.Fields) == 0 {
			fmt.Printf("%sNo open games\n", prefix)
			return
		}
		fmt.Printf("%sOpen games (%d):\n", prefix, len(msg.Fields))
		for _, name := range msg.Fields {
			fmt.Printf("  - %s\n", name)
		}
	case protocol.OpJoinGame:
		fmt.Printf("%sJoined the game\n", prefix)
	case protocol.OpInvitePlayer:
		if notification {
			fmt.Printf("%s%s invites you to game %q\n", prefix, field(msg, 0), field(msg, 1))
			return
		}
		fmt.Printf("Invitation sent\n")
	case protocol.OpSubmitField:
		fmt.Printf("%sFleet accepted\n", prefix)
	case protocol.OpMakeMove:
		fmt.Printf("%sShot result: %s\n", prefix, shotResult(field(msg, 0)))
	case protocol.OpGameStart:
		if field(msg, 0) == "Y" {
			fmt.Printf("%sGame started, you move first\n", prefix)
		} else {
			fmt.Printf("%sGame started, opponent moves first\n", prefix)
		}
	case protocol.OpOpponentMove:
		shot := field(msg, 0)
		if len(shot) == 3 {
			fmt.Printf("%sOpponent fired at %c,%c: %s\n", prefix, shot[0], shot[1], shotResult(shot[2:]))
			return
		}
		fmt.Printf("%sOpponent fired: %s\n", prefix, shot)
	case protocol.OpGameEnd:
		fmt.Printf("%sGame over, winner: %s\n", prefix, field(msg, 0))
	case protocol.OpPlayerJoined:
		fmt.Printf("%s%s joined your game\n", prefix, field(msg, 0))
	case protocol.OpPoll:
		if !notification {
			fmt.Println("No news")
		}
	case protocol.OpFailure:
		fmt.Printf("%sRequest failed\n", prefix)
	default:
		fmt.Printf("%s%s %s\n", prefix, string(msg.Op), strings.Join(msg.Fields, " "))
	}
}

func field(msg protocol.Message, i int) string {
	if i >= len(msg.Fields) {
		return ""
	}
	return msg.Fields[i]
}

func shotResult(digit string) string {
	switch digit {
	case "2":
		return "hit"
	case "3":
		return "miss"
	case "5":
		return "ship destroyed"
	default:
		return digit
	}
}

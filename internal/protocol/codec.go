// Package protocol implements the wire codec: single-character opcodes,
// '#'-delimited fields and '$'-delimited message batches.
//
// No escaping is defined. Field content must not contain the delimiter
// characters; this is a documented constraint of the protocol, not something
// the codec validates.
package protocol

import "strings"

// Delimiters.
const (
	FieldDelimiter = "#" // separates the opcode and fields within one message
	BatchDelimiter = "$" // separates independent messages batched into one payload
)

// Request opcodes.
const (
	OpLogin        byte = 'L' // L#login -> L#identity
	OpCreateGame   byte = 'C' // C#identity#gameName -> C
	OpListGames    byte = 'G' // G#identity -> G#name1#name2...
	OpJoinGame     byte = 'J' // J#identity#gameName -> J
	OpInvitePlayer byte = 'I' // I#identity#targetLogin#gameName -> I
	OpSubmitField  byte = 'M' // M#identity#gameName#row0..row9 -> M
	OpMakeMove     byte = 'D' // D#identity#gameName#rowcol -> D#result
	OpPoll         byte = 'N' // N#identity -> N (mailbox still drained)
)

// Notification opcodes, delivered only via the mailbox.
const (
	OpGameStart    byte = 'S' // S#Y (you start) / S#N (opponent starts)
	OpOpponentMove byte = 'Y' // Y#<row><col><result> as ASCII digits
	OpGameEnd      byte = 'E' // E#winnerLogin
	OpPlayerJoined byte = 'P' // P#joinerLogin
)

// OpFailure is the single failure opcode shared by every error class.
const OpFailure byte = 'F'

// Message is one decoded protocol message: an opcode plus its ordered fields.
type Message struct {
	Op     byte
	Fields []string
}

// Encode renders the message as opcode + (#field)*.
func (m Message) Encode() string {
	if len(m.Fields) == 0 {
		return string(m.Op)
	}
	return string(m.Op) + FieldDelimiter + strings.Join(m.Fields, FieldDelimiter)
}

// Decode splits a payload on the field delimiter. The opcode is the first
// character of the first element; an empty payload decodes to a zero opcode.
func Decode(payload string) Message {
	parts := strings.Split(payload, FieldDelimiter)

	var op byte
	if len(parts[0]) > 0 {
		op = parts[0][0]
	}

	return Message{Op: op, Fields: parts[1:]}
}

// JoinBatch concatenates independently generated messages into one payload,
// preserving their order.
func JoinBatch(messages []string) string {
	return strings.Join(messages, BatchDelimiter)
}

// SplitBatch decodes a batched payload back into its ordered messages.
func SplitBatch(payload string) []string {
	return strings.Split(payload, BatchDelimiter)
}

// Failure returns the encoded failure reply.
func Failure() string {
	return string(OpFailure)
}

// Ack returns the bare single-opcode reply for op.
func Ack(op byte) string {
	return string(op)
}

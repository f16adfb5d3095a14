package model

import (
	"encoding/json"
	"fmt"
)

// CommandKind enumerates every inbound player action. The command surface
// is a closed union dispatched by a single switch, so the event contract
// stays statically checkable.
type CommandKind string

const (
	CmdCreateRoom      CommandKind = "createRoom"
	CmdJoinRoom        CommandKind = "joinRoom"
	CmdLeaveRoom       CommandKind = "leaveRoom"
	CmdStartMatch      CommandKind = "startMatch"
	CmdPlaceWord       CommandKind = "placeWord"
	CmdExchangeLetters CommandKind = "exchangeLetters"
	CmdSkipTurn        CommandKind = "skipTurn"
	CmdHint            CommandKind = "hint"
)

// Command is the decoded form of one inbound message. Exactly one of the
// pointer fields matching Kind is set.
type Command struct {
	Kind CommandKind `json:"kind"`

	CreateRoom      *CreateRoomCommand      `json:"createRoom,omitempty"`
	JoinRoom        *JoinRoomCommand        `json:"joinRoom,omitempty"`
	LeaveRoom       *LeaveRoomCommand       `json:"leaveRoom,omitempty"`
	StartMatch      *StartMatchCommand      `json:"startMatch,omitempty"`
	PlaceWord       *PlaceWordCommand       `json:"placeWord,omitempty"`
	ExchangeLetters *ExchangeLettersCommand `json:"exchangeLetters,omitempty"`
	SkipTurn        *SkipTurnCommand        `json:"skipTurn,omitempty"`
	Hint            *HintCommand            `json:"hint,omitempty"`
}

// CreateRoomCommand opens a new waiting room
type CreateRoomCommand struct {
	Visibility Visibility `json:"visibility"`
	Password   string     `json:"password,omitempty"`
	Config     GameConfig `json:"config"`
}

// JoinRoomCommand requests a seat in a room
type JoinRoomCommand struct {
	RoomID   RoomID `json:"roomId"`
	Password string `json:"password,omitempty"`
}

// LeaveRoomCommand vacates a seat (or tears the room down when the
// creator leaves before start)
type LeaveRoomCommand struct {
	RoomID RoomID `json:"roomId"`
}

// StartMatchCommand promotes a waiting room to a live session
type StartMatchCommand struct {
	RoomID RoomID `json:"roomId"`
}

// PlaceWordCommand places letters starting at a coordinate along an
// orientation. Uppercase symbols denote blanks played as that letter.
type PlaceWordCommand struct {
	RoomID      RoomID      `json:"roomId"`
	FirstCoord  Position    `json:"firstCoord"`
	Orientation Orientation `json:"orientation"`
	Letters     string      `json:"letters"`
}

// ExchangeLettersCommand swaps rack letters against the reserve
type ExchangeLettersCommand struct {
	RoomID  RoomID `json:"roomId"`
	Letters string `json:"letters"`
}

// SkipTurnCommand passes the turn
type SkipTurnCommand struct {
	RoomID RoomID `json:"roomId"`
}

// HintCommand asks for a placement hint; it only counts against the
// hint-related objective
type HintCommand struct {
	RoomID RoomID `json:"roomId"`
}

// DecodeCommand parses an inbound message and checks that the payload
// matching its kind is present
func DecodeCommand(data []byte) (*Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, fmt.Errorf("malformed command: %w", err)
	}
	var ok bool
	switch cmd.Kind {
	case CmdCreateRoom:
		ok = cmd.CreateRoom != nil
	case CmdJoinRoom:
		ok = cmd.JoinRoom != nil
	case CmdLeaveRoom:
		ok = cmd.LeaveRoom != nil
	case CmdStartMatch:
		ok = cmd.StartMatch != nil
	case CmdPlaceWord:
		ok = cmd.PlaceWord != nil
	case CmdExchangeLetters:
		ok = cmd.ExchangeLetters != nil
	case CmdSkipTurn:
		ok = cmd.SkipTurn != nil
	case CmdHint:
		ok = cmd.Hint != nil
	default:
		return nil, fmt.Errorf("unknown command kind %q", cmd.Kind)
	}
	if !ok {
		return nil, fmt.Errorf("command %q missing payload", cmd.Kind)
	}
	return &cmd, nil
}

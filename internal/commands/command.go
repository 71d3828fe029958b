package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/choirsched/internal/calendar"
	"github.com/sandeepkv93/choirsched/internal/model"
)

type Type string

const (
	TypeGoto   Type = "goto"
	TypeToday  Type = "today"
	TypeSelect Type = "select"
	TypeAdd    Type = "add"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type GotoArgs struct {
	Month calendar.Month
}

type SelectArgs struct {
	Date time.Time
}

// AddArgs carries a title and an optional date given as an on:YYYY-MM-DD
// token anywhere in the input.
type AddArgs struct {
	Title string
	Date  time.Time
}

type Command struct {
	Type   Type
	Raw    string
	Goto   *GotoArgs
	Select *SelectArgs
	Add    *AddArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeGoto:
		return parseGoto(input, args)
	case TypeToday:
		return Command{Type: TypeToday, Raw: input}, nil
	case TypeSelect:
		return parseSelect(input, args)
	case TypeAdd:
		return parseAdd(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires a month (YYYY-MM)"}
	}
	month, err := calendar.ParseMonth(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("goto: %q is not YYYY-MM", args[0])}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Month: month}}, nil
}

func parseSelect(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "select requires a date (YYYY-MM-DD)"}
	}
	d, err := time.Parse(model.DateLayout, args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("select: %q is not YYYY-MM-DD", args[0])}
	}
	return Command{Type: TypeSelect, Raw: raw, Select: &SelectArgs{Date: d}}, nil
}

func parseAdd(raw string, args []string) (Command, error) {
	var out AddArgs
	words := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(strings.ToLower(arg), "on:") {
			value := strings.TrimSpace(arg[len("on:"):])
			d, err := time.Parse(model.DateLayout, value)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("add: %q is not YYYY-MM-DD", value)}
			}
			out.Date = d
			continue
		}
		words = append(words, arg)
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

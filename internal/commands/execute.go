package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Goto   func(GotoArgs) (Result, error)
	Today  func() (Result, error)
	Select func(SelectArgs) (Result, error)
	Add    func(AddArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goto(*cmd.Goto)
	case TypeToday:
		if handlers.Today == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Today()
	case TypeSelect:
		if handlers.Select == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Select(*cmd.Select)
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

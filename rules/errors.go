package rules

import "fmt"

// FenErrorCode identifies which FEN field failed to parse.
type FenErrorCode string

// FEN error codes, per the FEN field grammar.
const (
	ErrBoard           FenErrorCode = "ERR_BOARD"
	ErrTurn            FenErrorCode = "ERR_TURN"
	ErrCastling        FenErrorCode = "ERR_CASTLING"
	ErrEpSquare        FenErrorCode = "ERR_EP_SQUARE"
	ErrHalfmoves       FenErrorCode = "ERR_HALFMOVES"
	ErrFullmoves       FenErrorCode = "ERR_FULLMOVES"
	ErrRemainingChecks FenErrorCode = "ERR_REMAINING_CHECKS"
	ErrFen             FenErrorCode = "ERR_FEN"
)

// FenError is raised by Setup/Board FEN parsing only.
type FenError struct {
	Code FenErrorCode
	Msg  string
}

func (e *FenError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func newFenError(code FenErrorCode, msg string) *FenError {
	return &FenError{Code: code, Msg: msg}
}

// PositionErrorCause identifies why Position construction/validation failed.
type PositionErrorCause string

const (
	CauseEmpty           PositionErrorCause = "empty"
	CauseOppositeCheck   PositionErrorCause = "oppositeCheck"
	CauseImpossibleCheck PositionErrorCause = "impossibleCheck"
	CausePawnsOnBackrank PositionErrorCause = "pawnsOnBackrank"
	CauseKings           PositionErrorCause = "kings"
	CauseVariant         PositionErrorCause = "variant"
)

// PositionError is raised by Position construction/validation.
type PositionError struct {
	Cause PositionErrorCause
	Msg   string
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Cause, e.Msg)
}

func newPositionError(cause PositionErrorCause, msg string) *PositionError {
	return &PositionError{Cause: cause, Msg: msg}
}

// PlayError is raised only by Position.Play when the requested move is not legal.
// Position.playUnchecked never raises.
type PlayError struct {
	Move Move
	Msg  string
}

func (e *PlayError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", moveDebugString(e.Move), e.Msg)
}

func newPlayError(m Move, msg string) *PlayError {
	return &PlayError{Move: m, Msg: msg}
}

func moveDebugString(m Move) string {
	if m == nil {
		return "<nil>"
	}
	if s, ok := tryUCI(m); ok {
		return s
	}
	return "<move>"
}

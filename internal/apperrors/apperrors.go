package apperrors

import "errors"

// Stable machine-readable codes surfaced in conflict responses.
const (
	CodeItemNotExists      = "ITEM_NOT_EXISTS"
	CodeTaskListNotExists  = "TASK_LIST_NOT_EXISTS"
	CodeTaskListNameExists = "TASK_LIST_NAME_EXISTS"
	CodeTaskListWithTasks  = "TASK_LIST_WITH_TASKS"
	CodeUserWithLists      = "USER_WITH_LISTS"
	CodeConcurrencyError   = "CONCURRENCY_ERROR"
)

var (
	// ErrConcurrency signals a row-version mismatch on update or delete.
	// The caller must refetch and resubmit; nothing retries automatically.
	ErrConcurrency = errors.New("concurrency conflict")

	// ErrForbidden signals an ownership or role violation. It is surfaced
	// distinctly from not-found and from business conflicts, with an empty body.
	ErrForbidden = errors.New("forbidden action")
)

// NotValidOperation is a business precondition violation. It carries a stable
// code plus a human description and maps to a conflict response at the boundary.
type NotValidOperation struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *NotValidOperation) Error() string {
	return e.Code + ": " + e.Description
}

// NewNotValidOperation builds a NotValidOperation error.
func NewNotValidOperation(code, description string) *NotValidOperation {
	return &NotValidOperation{Code: code, Description: description}
}

// AsNotValidOperation unwraps err into a NotValidOperation if it is one.
func AsNotValidOperation(err error) (*NotValidOperation, bool) {
	var nvo *NotValidOperation
	if errors.As(err, &nvo) {
		return nvo, true
	}
	return nil, false
}

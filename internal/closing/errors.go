package closing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlreadyClosed             = errors.New("month already closed")
	ErrMissingDestinationAccount = errors.New("destination account required for positive remainder")
	ErrAccountNotFound           = errors.New("account not found")
	ErrNothingToCopy             = errors.New("no budget items to copy")
	ErrInvalidMonth              = errors.New("invalid month")
)

// PartialWriteError сообщает, что часть последовательных записей прошла,
// а очередная упала. Отката нет: вызывающий обязан перечитать состояние
// из хранилища, а не доверять данным в памяти.
type PartialWriteError struct {
	Completed []string
	Failed    string
	Err       error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write: step %q failed after [%s]: %v",
		e.Failed, strings.Join(e.Completed, ", "), e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

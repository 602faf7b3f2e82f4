package pipeline

import (
	"fmt"

	"github.com/Veraticus/tradeflow/internal/common"
)

// ErrStageFailed matches every error returned from a failed stage.
var ErrStageFailed = common.ErrStageFailed

// StageError reports which stage aborted a run.
type StageError struct {
	Err   error
	Stage string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrStageFailed.
func (e *StageError) Is(target error) bool {
	return target == ErrStageFailed
}

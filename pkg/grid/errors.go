package grid

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidRecordShape means a row record does not supply a key for every column.
	ErrInvalidRecordShape = errors.New("invalid record shape")
	// ErrInvalidDimensions means rows or columns is negative.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
)

// RecordShapeError describes the row whose record cannot fill the grid width.
// Keys is -1 when the row has no record at all.
type RecordShapeError struct {
	Row     int
	Keys    int
	Columns int
}

func (e *RecordShapeError) Error() string {
	if e.Keys < 0 {
		return fmt.Sprintf("%s: row %d has no record for %d columns", ErrInvalidRecordShape, e.Row, e.Columns)
	}
	return fmt.Sprintf("%s: row %d has %d keys, need %d", ErrInvalidRecordShape, e.Row, e.Keys, e.Columns)
}

// Is matches ErrInvalidRecordShape.
func (e *RecordShapeError) Is(target error) bool {
	return target == ErrInvalidRecordShape
}

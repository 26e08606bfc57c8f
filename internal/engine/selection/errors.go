package selection

import "errors"

// ErrOffsetOutOfRange indicates an offset outside [0, document length].
var ErrOffsetOutOfRange = errors.New("offset out of range")

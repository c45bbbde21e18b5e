package get_available_slots

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("usecase: internal error")

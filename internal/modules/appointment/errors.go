package appointment

import "errors"

var (
	ErrValidation           = errors.New("validation error")
	ErrNotFound             = errors.New("appointment not found")
	ErrPsychologistNotFound = errors.New("psychologist not found")
	ErrSlotTaken            = errors.New("slot already taken")
	ErrAlreadyCancelled     = errors.New("appointment already cancelled")
)

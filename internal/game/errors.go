package game

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrDuplicateRoom = errors.New("room already exists")
)

var (
	ErrFlagAlreadySet = errors.New("flag already set")
	ErrFlagNotSet     = errors.New("flag not set")
)

package repository

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned when nothing has been stored under a key yet
var ErrSlotNotFound = errors.New("slot not found")

// SlotRepository persists whole values under fixed keys
type SlotRepository interface {
	GetSlot(ctx context.Context, key string) ([]byte, error)
	SetSlot(ctx context.Context, key string, value []byte) error
}

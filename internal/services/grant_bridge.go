package services

import (
	"context"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/internal/infrastructure/buffer"
	"github.com/auroraminds/backend/usecase"
)

// GrantBridge adapts the grant processor to the usecase.GrantBuffer port.
type GrantBridge struct {
	processor *GrantProcessor
}

func NewGrantBridge(processor *GrantProcessor) *GrantBridge {
	return &GrantBridge{processor: processor}
}

func (b *GrantBridge) BufferGrant(ctx context.Context, userID string, amount int64, reason string) error {
	if b.processor == nil || userID == "" || amount <= 0 {
		return domain.ErrInvalidPayload
	}
	return b.processor.Buffer(ctx, buffer.Grant{
		UserID: userID,
		Amount: amount,
		Reason: reason,
	})
}

var _ usecase.GrantBuffer = (*GrantBridge)(nil)

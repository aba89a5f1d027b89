package port

import (
	"context"

	"github.com/itakecare/offerflow/internal/domain/entity"
)

// ContractCreator requests contract creation for a lease offer that reached
// its terminal step. The engine only cares about success or failure.
type ContractCreator interface {
	CreateContract(ctx context.Context, offer *entity.Offer) error
}

// InvoiceIssuer requests draft-invoice creation for a purchase offer that
// reached its terminal step. It returns an invoice reference on success.
type InvoiceIssuer interface {
	CreateDraft(ctx context.Context, offer *entity.Offer) (string, error)
}

// Notifier sends the acceptance message to the offer's client. The custom
// content replaces the default body when non-empty; includeAttachment asks
// for the generated document to be attached.
type Notifier interface {
	SendAcceptance(ctx context.Context, offer *entity.Offer, customContent string, includeAttachment bool) error
}

package damage

import (
	"github.com/chaosforge/damage-api/internal/damage"
)

// ApplyDamageInput is the input for applying one damage request.
type ApplyDamageInput struct {
	Request *damage.Request
}

// ApplyDamageOutput is the output of applying one damage request.
type ApplyDamageOutput struct {
	Result *damage.Result
}

// ApplyDamageBatchInput is the input for applying a batch of requests.
type ApplyDamageBatchInput struct {
	Requests []*damage.Request
}

// BatchItem is one request's outcome within a batch. Exactly one of Result
// and Err is set.
type BatchItem struct {
	Result *damage.Result
	Err    error
}

// ApplyDamageBatchOutput returns batch outcomes in submission order. A
// failed request occupies its slot with an error; it never fails the batch.
type ApplyDamageBatchOutput struct {
	Items []BatchItem
}

package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// SearchResult is one page of bills plus the per-type totals over the
// whole filter. A total with no matching rows stays null.
type SearchResult struct {
	List          []Bill              `json:"list"`
	PageCount     int                 `json:"pageCount"`
	TotalExpenses decimal.NullDecimal `json:"totalExpenses"`
	TotalRevenue  decimal.NullDecimal `json:"totalRevenue"`
}

// Balance is revenue minus expenses, treating a null total as zero.
func (r SearchResult) Balance() decimal.Decimal {
	return r.TotalRevenue.Decimal.Sub(r.TotalExpenses.Decimal)
}

// BillOp names the write that produced a BillEvent.
type BillOp string

const (
	BillCreated BillOp = "created"
	BillUpdated BillOp = "updated"
	BillDeleted BillOp = "deleted"
)

// BillEvent is published after a bill write succeeds.
type BillEvent struct {
	ID         string          `json:"id"`
	Op         BillOp          `json:"op"`
	Type       BillType        `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	CategoryID *string         `json:"categoryId,omitempty"`
	Time       time.Time       `json:"time"`
	Timestamp  time.Time       `json:"timestamp"`
}

// NewBillEvent snapshots b for op at now.
func NewBillEvent(op BillOp, b Bill, now time.Time) BillEvent {
	return BillEvent{
		ID:         b.ID,
		Op:         op,
		Type:       b.Type,
		Amount:     b.Amount,
		CategoryID: b.CategoryID,
		Time:       b.Time,
		Timestamp:  now.UTC(),
	}
}

package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Expenditure BillType = "EXPENDITURE"
	Revenue     BillType = "REVENUE"
)

type (
	// BillType partitions bills and categories into spending and income.
	BillType string

	Bill struct {
		ID         string          `json:"id"`
		Amount     decimal.Decimal `json:"amount"`
		CategoryID *string         `json:"categoryId"`
		Type       BillType        `json:"type"`
		Time       time.Time       `json:"time"`
	}

	Category struct {
		ID   string   `json:"id"`
		Name string   `json:"name"`
		Type BillType `json:"type"`
	}

	// BillInput is the body accepted by create and update.
	BillInput struct {
		Type       string           `json:"type"`
		Time       string           `json:"time"`
		CategoryID *string          `json:"categoryId,omitempty"`
		Amount     *decimal.Decimal `json:"amount"`
	}

	// BillDraft is a BillInput that passed shape validation.
	BillDraft struct {
		Type       BillType
		Time       time.Time
		CategoryID *string
		Amount     decimal.Decimal
	}
)

var (
	ErrBillNotFound = errors.New("bill not found")

	ErrCategoryNotFound     = &BizError{Code: "category_not_found", Message: "category not found"}
	ErrCategoryTypeMismatch = &BizError{Code: "category_type_mismatch", Message: "category type does not match bill type"}
)

// BizError is a business rule violation. Clients render it inline rather
// than as a generic failure.
type BizError struct {
	Code    string
	Message string
}

func (e *BizError) Error() string {
	return e.Message
}

// IsBizError reports whether err carries a *BizError.
func IsBizError(err error) bool {
	var biz *BizError
	return errors.As(err, &biz)
}

// Valid reports whether t is one of the two known bill types.
func (t BillType) Valid() bool {
	switch t {
	case Expenditure, Revenue:
		return true
	default:
		return false
	}
}

// ParseBillType accepts the enum names case-insensitively.
func ParseBillType(s string) (BillType, bool) {
	t := BillType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Validate checks the shape of a bill body. It does not look at categories.
func (in BillInput) Validate() (BillDraft, error) {
	var fe FieldErrors
	var draft BillDraft

	if strings.TrimSpace(in.Type) == "" {
		fe.Add("type", "type is required")
	} else if t, ok := ParseBillType(in.Type); !ok {
		fe.Add("type", "type must be one of EXPENDITURE, REVENUE")
	} else {
		draft.Type = t
	}

	if strings.TrimSpace(in.Time) == "" {
		fe.Add("time", "time is required")
	} else if ts, err := ParseTime(in.Time); err != nil {
		fe.Add("time", "time must be an RFC 3339 timestamp or a YYYY-MM-DD date")
	} else {
		draft.Time = ts
	}

	if in.Amount == nil {
		fe.Add("amount", "amount is required")
	} else {
		amount := RoundCents(*in.Amount)
		switch {
		case !amount.IsPositive():
			fe.Add("amount", "amount must be greater than 0")
		case amount.GreaterThan(MaxAmount):
			fe.Add("amount", "amount must not exceed "+MaxAmount.StringFixed(2))
		}
		draft.Amount = amount
	}

	if in.CategoryID != nil {
		if id := strings.TrimSpace(*in.CategoryID); id != "" {
			draft.CategoryID = &id
		}
	}

	if err := fe.Err(); err != nil {
		return BillDraft{}, err
	}
	return draft, nil
}

// Bill materializes the draft under the given id.
func (d BillDraft) Bill(id string) Bill {
	return Bill{
		ID:         id,
		Amount:     d.Amount,
		CategoryID: d.CategoryID,
		Type:       d.Type,
		Time:       d.Time,
	}
}

// CheckCategory enforces that a bill only references a category of its own type.
func (d BillDraft) CheckCategory(c Category) error {
	if c.Type != d.Type {
		return ErrCategoryTypeMismatch
	}
	return nil
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseTime accepts RFC 3339 timestamps and plain dates (midnight UTC).
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// DebtDirection is a required tagged variant. Stored rows that predate the
// field are normalized to IOwe when loaded, never defaulted at read sites.
type DebtDirection string

const (
	OwedToMe DebtDirection = "owed_to_me"
	IOwe     DebtDirection = "i_owe"
)

// NormalizeDirection maps a possibly-absent stored value to a valid
// direction. Anything that is not owed_to_me means the user owes.
func NormalizeDirection(raw string) DebtDirection {
	if DebtDirection(raw) == OwedToMe {
		return OwedToMe
	}
	return IOwe
}

type Debt struct {
	ID          int64
	Amount      decimal.Decimal
	Description string
	Note        string
	Direction   DebtDirection
}

func (d Debt) Validate() error {
	if !d.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(d.Description) == "" {
		return ErrEmptyDescription
	}
	switch d.Direction {
	case OwedToMe, IOwe:
	default:
		return errors.New("invalid debt direction")
	}
	return nil
}

// PartitionDebts splits records into the creditor ("owed to me") and debtor
// ("I owe") buckets. Direction is already normalized at load, so anything
// not owed_to_me lands in the debtor bucket.
func PartitionDebts(debts []Debt) (owedToMe, iOwe []Debt) {
	for _, d := range debts {
		if d.Direction == OwedToMe {
			owedToMe = append(owedToMe, d)
		} else {
			iOwe = append(iOwe, d)
		}
	}
	return owedToMe, iOwe
}

// DebtField names the individually editable debt fields.
type DebtField string

const (
	FieldAmount      DebtField = "amount"
	FieldDescription DebtField = "description"
	FieldNote        DebtField = "note"
)

// ErrEditDiscarded signals that a field edit failed its commit rule; the
// caller restores the prior value and sends no request.
var ErrEditDiscarded = errors.New("edit discarded")

// ApplyEdit commits a single-field edit in place. An amount must parse to a
// number greater than zero and a description must be non-empty after
// trimming, otherwise the edit is discarded. A note is accepted as-is;
// committing an empty note clears it.
func (d *Debt) ApplyEdit(field DebtField, value string) error {
	switch field {
	case FieldAmount:
		amt, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil || !amt.IsPositive() {
			return ErrEditDiscarded
		}
		d.Amount = amt
	case FieldDescription:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return ErrEditDiscarded
		}
		d.Description = trimmed
	case FieldNote:
		d.Note = strings.TrimSpace(value)
	default:
		return errors.New("unknown debt field: " + string(field))
	}
	return nil
}

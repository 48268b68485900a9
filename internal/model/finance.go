package model

import "time"

// EntryType splits the finance ledger into payables and receivables.
type EntryType string

const (
	EntryOutflow EntryType = "SAIDA"   // contas a pagar
	EntryInflow  EntryType = "ENTRADA" // valores a receber
)

// EntryStatus of a ledger entry.
type EntryStatus string

const (
	EntryPending EntryStatus = "PENDENTE"
	EntryPaid    EntryStatus = "PAGO"
)

// FinanceEntry is one accounts-payable or accounts-receivable row. Only PAGO
// entries count toward the profit-and-loss report.
type FinanceEntry struct {
	BaseModel
	Description string      `gorm:"type:varchar(255);not null" json:"description" validate:"required"`
	Value       float64     `gorm:"type:decimal(12,2);not null" json:"value" validate:"required,gt=0"`
	DueDate     time.Time   `gorm:"type:date;index" json:"due_date"`
	Type        EntryType   `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=SAIDA ENTRADA"`
	Status      EntryStatus `gorm:"type:varchar(10);not null;default:'PENDENTE'" json:"status"`
}

// Toggle flips the entry between pending and paid.
func (e *FinanceEntry) Toggle() {
	if e.Status == EntryPaid {
		e.Status = EntryPending
	} else {
		e.Status = EntryPaid
	}
}

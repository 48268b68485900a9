package repository

import (
	"time"

	"go-atelier-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyExpensePoint is one bucket of the dashboard expense chart.
type DailyExpensePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type FinanceRepository interface {
	Create(entry *model.FinanceEntry) error
	FindByType(entryType model.EntryType) ([]model.FinanceEntry, error)
	FindByID(id uuid.UUID) (*model.FinanceEntry, error)
	Update(entry *model.FinanceEntry) error
	Delete(id uuid.UUID) error

	// SumPaidBetween totals PAGO entries of the given type over a period; a
	// zero start/end widens to all time.
	SumPaidBetween(entryType model.EntryType, start, end time.Time) (float64, error)

	// DailyExpense buckets PAGO outflows by due date for the dashboard chart.
	DailyExpense(start, end time.Time) ([]DailyExpensePoint, error)
}

type financeRepo struct {
	db *gorm.DB
}

func NewFinanceRepo(db *gorm.DB) FinanceRepository {
	return &financeRepo{db}
}

func (r *financeRepo) Create(entry *model.FinanceEntry) error {
	return r.db.Create(entry).Error
}

func (r *financeRepo) FindByType(entryType model.EntryType) ([]model.FinanceEntry, error) {
	var entries []model.FinanceEntry
	err := r.db.Where("type = ?", entryType).Order("due_date ASC").Find(&entries).Error
	return entries, err
}

func (r *financeRepo) FindByID(id uuid.UUID) (*model.FinanceEntry, error) {
	var entry model.FinanceEntry
	if err := r.db.First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *financeRepo) Update(entry *model.FinanceEntry) error {
	return r.db.Save(entry).Error
}

func (r *financeRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.FinanceEntry{}, "id = ?", id).Error
}

func (r *financeRepo) SumPaidBetween(entryType model.EntryType, start, end time.Time) (float64, error) {
	var total float64
	q := r.db.Model(&model.FinanceEntry{}).
		Where("type = ? AND status = ?", entryType, model.EntryPaid).
		Select("COALESCE(SUM(value), 0)")
	if !start.IsZero() {
		q = q.Where("due_date >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("due_date <= ?", end)
	}
	err := q.Scan(&total).Error
	return total, err
}

func (r *financeRepo) DailyExpense(start, end time.Time) ([]DailyExpensePoint, error) {
	var results []DailyExpensePoint

	q := r.db.Model(&model.FinanceEntry{}).
		Select(`DATE(due_date) as date, COALESCE(SUM(value), 0) as value`).
		Where("type = ? AND status = ?", model.EntryOutflow, model.EntryPaid).
		Group("DATE(due_date)").
		Order("date ASC")
	if !start.IsZero() {
		q = q.Where("due_date >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("due_date <= ?", end)
	}

	rows, err := q.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var point DailyExpensePoint
		if err := rows.Scan(&point.Date, &point.Value); err != nil {
			return nil, err
		}
		results = append(results, point)
	}
	return results, nil
}

package service

import (
	"testing"
	"time"

	"go-atelier-erp/internal/model"
	"go-atelier-erp/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type reportSaleRepo struct {
	revenue float64
	count   int64
	daily   []repository.DailyRevenuePoint
}

func (r *reportSaleRepo) Create(tx *gorm.DB, sale *model.Sale) error { return nil }

func (r *reportSaleRepo) FindRecent(limit int) ([]model.Sale, error) { return nil, nil }

func (r *reportSaleRepo) RevenueBetween(start, end time.Time) (float64, int64, error) {
	return r.revenue, r.count, nil
}

func (r *reportSaleRepo) CostOfGoodsBetween(start, end time.Time) (float64, error) { return 0, nil }

func (r *reportSaleRepo) DailyRevenue(start, end time.Time) ([]repository.DailyRevenuePoint, error) {
	return r.daily, nil
}

type reportFinanceRepo struct {
	paidOutflows float64
	daily        []repository.DailyExpensePoint
}

func (r *reportFinanceRepo) Create(entry *model.FinanceEntry) error { return nil }

func (r *reportFinanceRepo) FindByType(entryType model.EntryType) ([]model.FinanceEntry, error) {
	return nil, nil
}

func (r *reportFinanceRepo) FindByID(id uuid.UUID) (*model.FinanceEntry, error) { return nil, nil }

func (r *reportFinanceRepo) Update(entry *model.FinanceEntry) error { return nil }

func (r *reportFinanceRepo) Delete(id uuid.UUID) error { return nil }

func (r *reportFinanceRepo) SumPaidBetween(entryType model.EntryType, start, end time.Time) (float64, error) {
	if entryType == model.EntryOutflow {
		return r.paidOutflows, nil
	}
	return 0, nil
}

func (r *reportFinanceRepo) DailyExpense(start, end time.Time) ([]repository.DailyExpensePoint, error) {
	return r.daily, nil
}

type reportOrderRepo struct {
	open int64
}

func (r *reportOrderRepo) Create(tx *gorm.DB, order *model.Order) error { return nil }

func (r *reportOrderRepo) Save(tx *gorm.DB, order *model.Order) error { return nil }

func (r *reportOrderRepo) FindAll() ([]model.Order, error) { return nil, nil }

func (r *reportOrderRepo) FindByID(id uuid.UUID) (*model.Order, error) { return nil, nil }

func (r *reportOrderRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	return nil, nil
}

func (r *reportOrderRepo) ReplaceLines(tx *gorm.DB, orderID uuid.UUID, lines []model.OrderLine) error {
	return nil
}

func (r *reportOrderRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.OrderStatus, updatedBy string) error {
	return nil
}

func (r *reportOrderRepo) Delete(id uuid.UUID) error { return nil }

func (r *reportOrderRepo) CountOpen() (int64, error) { return r.open, nil }

func TestDashboard(t *testing.T) {
	t.Run("expense and ticket figures", func(t *testing.T) {
		sales := &reportSaleRepo{
			revenue: 2400,
			count:   6,
			daily:   []repository.DailyRevenuePoint{{Date: "2026-08-03", Revenue: 400, Count: 1}},
		}
		finance := &reportFinanceRepo{
			paidOutflows: 900,
			daily:        []repository.DailyExpensePoint{{Date: "2026-08-05", Value: 300}},
		}
		svc := NewReportService(sales, &reportOrderRepo{open: 4}, finance, &stubProductRepo{}, nil)

		report, err := svc.Dashboard()
		assert.NoError(t, err)
		assert.Equal(t, 2400.0, report.MonthRevenue)
		assert.Equal(t, 900.0, report.MonthExpenses)
		assert.Equal(t, 1500.0, report.MonthProfit)
		assert.Equal(t, 400.0, report.AverageTicket)
		assert.Equal(t, int64(6), report.MonthSaleCount)
		assert.Equal(t, int64(4), report.OpenOrders)
		assert.Equal(t, finance.daily, report.DailyExpenses)
		assert.Equal(t, sales.daily, report.DailyRevenue)
	})

	t.Run("no sales leaves the ticket at zero", func(t *testing.T) {
		svc := NewReportService(&reportSaleRepo{}, &reportOrderRepo{}, &reportFinanceRepo{}, &stubProductRepo{}, nil)

		report, err := svc.Dashboard()
		assert.NoError(t, err)
		assert.Equal(t, 0.0, report.AverageTicket)
		assert.Equal(t, 0.0, report.MonthProfit)
	})
}

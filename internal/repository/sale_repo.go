package repository

import (
	"time"

	"go-atelier-erp/internal/model"

	"gorm.io/gorm"
)

// DailyRevenuePoint is one bucket of the dashboard chart.
type DailyRevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindRecent(limit int) ([]model.Sale, error)

	// Report aggregations. A zero start/end means "all time".
	RevenueBetween(start, end time.Time) (float64, int64, error)
	CostOfGoodsBetween(start, end time.Time) (float64, error)
	DailyRevenue(start, end time.Time) ([]DailyRevenuePoint, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindRecent(limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Lines").Preload("Lines.Product").
		Order("created_at DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func periodScope(q *gorm.DB, column string, start, end time.Time) *gorm.DB {
	if !start.IsZero() {
		q = q.Where(column+" >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where(column+" <= ?", end)
	}
	return q
}

func (r *saleRepo) RevenueBetween(start, end time.Time) (float64, int64, error) {
	var revenue float64
	var count int64

	q := periodScope(r.db.Model(&model.Sale{}), "created_at", start, end)
	if err := q.Count(&count).Error; err != nil {
		return 0, 0, err
	}
	q = periodScope(r.db.Model(&model.Sale{}), "created_at", start, end)
	if err := q.Select("COALESCE(SUM(total_value), 0)").Scan(&revenue).Error; err != nil {
		return 0, 0, err
	}
	return revenue, count, nil
}

// CostOfGoodsBetween sums quantity * product cost price over the sale lines of
// the period.
func (r *saleRepo) CostOfGoodsBetween(start, end time.Time) (float64, error) {
	var cost float64
	q := r.db.Model(&model.SaleLine{}).
		Joins("JOIN products ON products.id = sale_lines.product_id").
		Select("COALESCE(SUM(sale_lines.quantity * products.cost_price), 0)")
	q = periodScope(q, "sale_lines.created_at", start, end)
	err := q.Scan(&cost).Error
	return cost, err
}

func (r *saleRepo) DailyRevenue(start, end time.Time) ([]DailyRevenuePoint, error) {
	var results []DailyRevenuePoint

	q := r.db.Model(&model.Sale{}).
		Select(`DATE(created_at) as date, COALESCE(SUM(total_value), 0) as revenue, COUNT(*) as count`).
		Group("DATE(created_at)").
		Order("date ASC")
	q = periodScope(q, "created_at", start, end)

	rows, err := q.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var point DailyRevenuePoint
		if err := rows.Scan(&point.Date, &point.Revenue, &point.Count); err != nil {
			return nil, err
		}
		results = append(results, point)
	}
	return results, nil
}

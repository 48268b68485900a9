package service

import (
	"errors"
	"math"
	"time"

	"go-atelier-erp/internal/model"
	"go-atelier-erp/internal/pricing"
	"go-atelier-erp/internal/repository"
)

// lowStockThreshold marks products the dashboard calls out as running low.
const lowStockThreshold = 10

var ErrBadPeriod = errors.New("period end precedes its start")

// ProfitLossReport aggregates a period into the P&L figures:
// revenue from sales, cost of goods from the sold quantities at product cost,
// plus the paid finance ledger entries.
type ProfitLossReport struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Revenue      float64   `json:"revenue"`
	SaleCount    int64     `json:"sale_count"`
	CostOfGoods  float64   `json:"cost_of_goods"`
	PaidExpenses float64   `json:"paid_expenses"`
	OtherIncome  float64   `json:"other_income"`
	GrossProfit  float64   `json:"gross_profit"`
	NetResult    float64   `json:"net_result"`
}

// DashboardReport is the landing screen payload.
type DashboardReport struct {
	MonthRevenue   float64                        `json:"month_revenue"`
	MonthExpenses  float64                        `json:"month_expenses"`
	MonthProfit    float64                        `json:"month_profit"`
	MonthSaleCount int64                          `json:"month_sale_count"`
	AverageTicket  float64                        `json:"average_ticket"`
	OpenOrders     int64                          `json:"open_orders"`
	LowStockCount  int                            `json:"low_stock_count"`
	DailyRevenue   []repository.DailyRevenuePoint `json:"daily_revenue"`
	DailyExpenses  []repository.DailyExpensePoint `json:"daily_expenses"`
	LatestSales    []model.Sale                   `json:"latest_sales"`
}

// PurchaseSuggestion recommends a restock quantity for a material at or under
// its minimum. The suggested amount covers the shortfall plus a 20% margin.
type PurchaseSuggestion struct {
	Material          model.RawMaterial `json:"material"`
	Shortfall         float64           `json:"shortfall"`
	SuggestedQuantity float64           `json:"suggested_quantity"`
	EstimatedCost     float64           `json:"estimated_cost"`
}

type ReportService interface {
	ProfitLoss(start, end time.Time) (*ProfitLossReport, error)
	Dashboard() (*DashboardReport, error)
	PurchaseSuggestions() ([]PurchaseSuggestion, error)
}

type reportService struct {
	saleRepo     repository.SaleRepository
	orderRepo    repository.OrderRepository
	financeRepo  repository.FinanceRepository
	productRepo  repository.ProductRepository
	materialRepo repository.MaterialRepository
}

func NewReportService(
	saleRepo repository.SaleRepository,
	orderRepo repository.OrderRepository,
	financeRepo repository.FinanceRepository,
	productRepo repository.ProductRepository,
	materialRepo repository.MaterialRepository,
) ReportService {
	return &reportService{
		saleRepo:     saleRepo,
		orderRepo:    orderRepo,
		financeRepo:  financeRepo,
		productRepo:  productRepo,
		materialRepo: materialRepo,
	}
}

func (s *reportService) ProfitLoss(start, end time.Time) (*ProfitLossReport, error) {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return nil, ErrBadPeriod
	}

	revenue, count, err := s.saleRepo.RevenueBetween(start, end)
	if err != nil {
		return nil, err
	}

	cogs, err := s.saleRepo.CostOfGoodsBetween(start, end)
	if err != nil {
		return nil, err
	}

	expenses, err := s.financeRepo.SumPaidBetween(model.EntryOutflow, start, end)
	if err != nil {
		return nil, err
	}

	income, err := s.financeRepo.SumPaidBetween(model.EntryInflow, start, end)
	if err != nil {
		return nil, err
	}

	gross := pricing.Round2(revenue - cogs)
	net := pricing.Round2(gross - expenses + income)

	return &ProfitLossReport{
		Start:        start,
		End:          end,
		Revenue:      pricing.Round2(revenue),
		SaleCount:    count,
		CostOfGoods:  pricing.Round2(cogs),
		PaidExpenses: pricing.Round2(expenses),
		OtherIncome:  pricing.Round2(income),
		GrossProfit:  gross,
		NetResult:    net,
	}, nil
}

func (s *reportService) Dashboard() (*DashboardReport, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	revenue, count, err := s.saleRepo.RevenueBetween(monthStart, now)
	if err != nil {
		return nil, err
	}

	expenses, err := s.financeRepo.SumPaidBetween(model.EntryOutflow, monthStart, now)
	if err != nil {
		return nil, err
	}

	openOrders, err := s.orderRepo.CountOpen()
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.FindLowStock(lowStockThreshold)
	if err != nil {
		return nil, err
	}

	daily, err := s.saleRepo.DailyRevenue(monthStart, now)
	if err != nil {
		return nil, err
	}

	dailyExpenses, err := s.financeRepo.DailyExpense(monthStart, now)
	if err != nil {
		return nil, err
	}

	latest, err := s.saleRepo.FindRecent(5)
	if err != nil {
		return nil, err
	}

	avgTicket := 0.0
	if count > 0 {
		avgTicket = pricing.Round2(revenue / float64(count))
	}

	return &DashboardReport{
		MonthRevenue:   pricing.Round2(revenue),
		MonthExpenses:  pricing.Round2(expenses),
		MonthProfit:    pricing.Round2(revenue - expenses),
		MonthSaleCount: count,
		AverageTicket:  avgTicket,
		OpenOrders:     openOrders,
		LowStockCount:  len(lowStock),
		DailyRevenue:   daily,
		DailyExpenses:  dailyExpenses,
		LatestSales:    latest,
	}, nil
}

func (s *reportService) PurchaseSuggestions() ([]PurchaseSuggestion, error) {
	materials, err := s.materialRepo.FindBelowMinimum()
	if err != nil {
		return nil, err
	}

	suggestions := make([]PurchaseSuggestion, 0, len(materials))
	for _, m := range materials {
		shortfall := m.MinimumStock - m.CurrentStock
		if shortfall < 0 {
			shortfall = 0
		}
		suggested := math.Ceil(shortfall * 1.2)
		suggestions = append(suggestions, PurchaseSuggestion{
			Material:          m,
			Shortfall:         shortfall,
			SuggestedQuantity: suggested,
			EstimatedCost:     pricing.Round2(suggested * m.AverageCost),
		})
	}
	return suggestions, nil
}

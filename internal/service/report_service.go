package service

import (
	"time"

	"github.com/mbruton/pennywise/internal/domain"
	"github.com/mbruton/pennywise/internal/report"
	"golang.org/x/sync/errgroup"
)

// ReportService assembles ledger snapshots and hands them to the report
// builder. The builder itself never touches the store.
type ReportService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	budgetRepo      domain.BudgetRepository
	builder         *report.Builder
}

// NewReportService creates a new ReportService
func NewReportService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository, budgetRepo domain.BudgetRepository) *ReportService {
	return &ReportService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		budgetRepo:      budgetRepo,
		builder:         report.NewBuilder(),
	}
}

// LoadSnapshot fetches an internally-consistent copy of the ledger for one
// report computation.
func (s *ReportService) LoadSnapshot(asOf time.Time) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{AsOf: asOf}

	var g errgroup.Group
	g.Go(func() error {
		var err error
		snap.Transactions, err = s.transactionRepo.GetAll(nil)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Categories, err = s.categoryRepo.GetAll()
		return err
	})
	g.Go(func() error {
		var err error
		snap.Budgets, err = s.budgetRepo.GetAll(nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// MonthlyReport builds the report document for one calendar month
func (s *ReportService) MonthlyReport(year, month int) (*report.MonthlyReport, error) {
	snap, err := s.LoadSnapshot(time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return s.builder.Monthly(snap, year, month)
}

// YearlyReport builds the report document for one calendar year
func (s *ReportService) YearlyReport(year int) (*report.YearlyReport, error) {
	snap, err := s.LoadSnapshot(time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return s.builder.Yearly(snap, year)
}

// QuickSummary builds the at-a-glance document as of now
func (s *ReportService) QuickSummary() (*report.QuickSummary, error) {
	snap, err := s.LoadSnapshot(time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return s.builder.QuickSummary(snap)
}

// Trend returns the month-by-month totals for the last n months
func (s *ReportService) Trend(months int) ([]report.TrendPoint, error) {
	now := time.Now().UTC()
	snap, err := s.LoadSnapshot(now)
	if err != nil {
		return nil, err
	}
	return report.TrendSeries(snap.Transactions, snap.Categories, now.Year(), int(now.Month()), months)
}

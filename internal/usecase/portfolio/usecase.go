package portfolio

import (
	"context"
	"encoding/json"
	"time"

	"credit-risk-ledger/internal/domain/application"
	"credit-risk-ledger/internal/domain/loan"
	npaDomain "credit-risk-ledger/internal/domain/npa"
	repaymentDomain "credit-risk-ledger/internal/domain/repayment"
	"credit-risk-ledger/internal/domain/uow"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const summaryCacheKey = "portfolio:summary"

// Usecase is the read side: on-demand rollups over loans, the repayment
// ledger and NPA tracking. It never mutates financial state. The summary is
// cached briefly in Redis; cache misses and cache errors both fall through
// to a fresh computation.
type Usecase struct {
	repos    uow.Repos
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewUsecase(repos uow.Repos, rdb *redis.Client, cacheTTL time.Duration) *Usecase {
	return &Usecase{repos: repos, rdb: rdb, cacheTTL: cacheTTL}
}

func (u *Usecase) Summary(ctx context.Context, asOf time.Time) (*Summary, error) {
	if cached := u.loadCached(ctx); cached != nil {
		return cached, nil
	}

	totalApplications, err := u.repos.Applications.Count(ctx)
	if err != nil {
		return nil, err
	}
	approvedApps, err := u.repos.Applications.CountByStatus(ctx, application.StatusApproved)
	if err != nil {
		return nil, err
	}

	totalLoans, err := u.repos.Loans.Count(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[loan.Status]int64{}
	for _, s := range []loan.Status{loan.StatusActive, loan.StatusClosed, loan.StatusDefaulted, loan.StatusWrittenOff} {
		n, err := u.repos.Loans.CountByStatus(ctx, s)
		if err != nil {
			return nil, err
		}
		counts[s] = n
	}

	totalDisbursed, err := u.repos.Loans.SumDisbursedAll(ctx)
	if err != nil {
		return nil, err
	}
	totalOutstanding, err := u.repos.Loans.SumOutstandingByStatus(ctx, loan.StatusActive, loan.StatusDefaulted)
	if err != nil {
		return nil, err
	}
	totalRepaid, err := u.repos.Loans.SumTotalPaid(ctx)
	if err != nil {
		return nil, err
	}
	npaExposure, err := u.repos.NPAs.OpenExposure(ctx)
	if err != nil {
		return nil, err
	}

	dueToDate, err := u.repos.Repayments.CountDueBefore(ctx, asOf)
	if err != nil {
		return nil, err
	}
	paidOnTime, err := u.repos.Repayments.CountPaidOnTimeBefore(ctx, asOf)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		LoanStatistics: LoanStatistics{
			TotalApplications: totalApplications,
			TotalLoans:        totalLoans,
			ActiveLoans:       counts[loan.StatusActive],
			ClosedLoans:       counts[loan.StatusClosed],
			DefaultedLoans:    counts[loan.StatusDefaulted],
			WrittenOffLoans:   counts[loan.StatusWrittenOff],
			ApprovalRate:      ratioOfCounts(approvedApps, totalApplications),
		},
		FinancialMetrics: FinancialMetrics{
			TotalDisbursed:   totalDisbursed,
			TotalOutstanding: totalOutstanding,
			TotalRepaid:      totalRepaid,
			TotalNpaExposure: npaExposure,
		},
		RiskMetrics: RiskMetrics{
			NpaRatio:             ratio(npaExposure, totalOutstanding),
			DefaultRate:          ratioOfCounts(counts[loan.StatusDefaulted]+counts[loan.StatusWrittenOff], totalLoans),
			RepaymentPerformance: ratioOfCounts(paidOnTime, dueToDate),
		},
	}
	u.storeCached(ctx, s)
	return s, nil
}

func (u *Usecase) NPAAnalysis(ctx context.Context) (*NPAAnalysis, error) {
	totalLoans, err := u.repos.Loans.Count(ctx)
	if err != nil {
		return nil, err
	}
	breakdown, err := u.repos.NPAs.CategoryBreakdown(ctx)
	if err != nil {
		return nil, err
	}

	var totalNpa int64
	for _, s := range breakdown {
		totalNpa += s.Count
	}
	standard := totalLoans - totalNpa
	if standard < 0 {
		standard = 0
	}

	classification := map[npaDomain.Category]CategorySlice{
		npaDomain.CategoryStandard: {Count: standard, Percentage: ratioOfCounts(standard, totalLoans).Mul(hundred)},
	}
	amounts := map[npaDomain.Category]AmountSlice{}
	for _, c := range []npaDomain.Category{npaDomain.CategorySubStandard, npaDomain.CategoryDoubtful, npaDomain.CategoryLoss} {
		s := breakdown[c]
		classification[c] = CategorySlice{Count: s.Count, Percentage: ratioOfCounts(s.Count, totalLoans).Mul(hundred)}
		amounts[c] = AmountSlice{Outstanding: s.Outstanding, Provision: s.Provision}
	}

	return &NPAAnalysis{
		Classification:  classification,
		AmountBreakdown: amounts,
		TotalNpaLoans:   totalNpa,
		TotalLoans:      totalLoans,
	}, nil
}

func (u *Usecase) RepaymentStats(ctx context.Context) (*RepaymentStats, error) {
	dist, err := u.repos.Repayments.StatusDistribution(ctx)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range dist {
		total += n
	}

	emiDue, err := u.repos.Repayments.SumEMIDue(ctx)
	if err != nil {
		return nil, err
	}
	collected, err := u.repos.Repayments.SumCollected(ctx)
	if err != nil {
		return nil, err
	}
	penalties, err := u.repos.Repayments.SumPenalties(ctx)
	if err != nil {
		return nil, err
	}
	avgOverdue, err := u.repos.Repayments.AvgDaysOverdue(ctx)
	if err != nil {
		return nil, err
	}

	return &RepaymentStats{
		TotalInstallments:    total,
		StatusDistribution:   dist,
		OnTimePercentage:     ratioOfCounts(dist[repaymentDomain.StatusPaid], total).Mul(hundred),
		TotalEMIDue:          emiDue,
		TotalCollected:       collected,
		CollectionEfficiency: ratio(collected, emiDue).Mul(hundred),
		TotalPenalties:       penalties,
		AvgDaysOverdue:       avgOverdue,
	}, nil
}

var hundred = decimal.NewFromInt(100)

// ratio is zero-safe: an empty portfolio yields 0, never a division error.
func ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den).Round(4)
}

func ratioOfCounts(num, den int64) decimal.Decimal {
	return ratio(decimal.NewFromInt(num), decimal.NewFromInt(den))
}

func (u *Usecase) loadCached(ctx context.Context) *Summary {
	if u.rdb == nil {
		return nil
	}
	raw, err := u.rdb.Get(ctx, summaryCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var s Summary
	if json.Unmarshal(raw, &s) != nil {
		return nil
	}
	return &s
}

func (u *Usecase) storeCached(ctx context.Context, s *Summary) {
	if u.rdb == nil || u.cacheTTL <= 0 {
		return
	}
	if raw, err := json.Marshal(s); err == nil {
		_ = u.rdb.Set(ctx, summaryCacheKey, raw, u.cacheTTL).Err()
	}
}

package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockwatchhq/stockwatch-backend/internal/suppliers"
	"github.com/stockwatchhq/stockwatch-backend/pkg/config"
	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
	"github.com/stockwatchhq/stockwatch-backend/pkg/enums"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
	"github.com/stockwatchhq/stockwatch-backend/pkg/logger"
	"github.com/stockwatchhq/stockwatch-backend/pkg/redis"
)

// Service exposes the low-stock reporting operations.
type Service interface {
	GetLowStockReport(ctx context.Context, companyID uuid.UUID, opts ReportOptions) (*ReportDTO, error)
}

type companyLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

type supplierLister interface {
	ListForProducts(ctx context.Context, productIDs []uuid.UUID) ([]suppliers.ProductSupplierRow, error)
}

type reportCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	AlertReportKey(companyID, fingerprint string) string
}

// ServiceParams configure the alert service.
type ServiceParams struct {
	Repo         *Repository
	CompanyRepo  companyLoader
	SupplierRepo supplierLister
	Cache        reportCache // optional
	Logger       *logger.Logger
	Defaults     config.AlertsConfig
}

type service struct {
	repo         *Repository
	companyRepo  companyLoader
	supplierRepo supplierLister
	cache        reportCache
	logg         *logger.Logger
	defaults     config.AlertsConfig
	now          func() time.Time
}

// NewService constructs an alert service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("alert repository required")
	}
	if params.CompanyRepo == nil {
		return nil, fmt.Errorf("company repository required")
	}
	if params.SupplierRepo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	return &service{
		repo:         params.Repo,
		companyRepo:  params.CompanyRepo,
		supplierRepo: params.SupplierRepo,
		cache:        params.Cache,
		logg:         params.Logger,
		defaults:     params.Defaults,
		now:          time.Now,
	}, nil
}

// GetLowStockReport aggregates every product's stock across all of the
// company's warehouses and reports the ones trading below threshold. Products
// without a sale inside the lookback window are dropped unless
// IncludeNoSales is set.
func (s *service) GetLowStockReport(ctx context.Context, companyID uuid.UUID, opts ReportOptions) (*ReportDTO, error) {
	opts, err := s.normalizeOptions(opts)
	if err != nil {
		return nil, err
	}

	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load company")
	}

	if cached := s.fromCache(ctx, companyID, opts); cached != nil {
		return cached, nil
	}

	now := s.now().UTC()
	since := now.AddDate(0, 0, -opts.WindowDays)

	matrix, err := s.repo.StockMatrix(ctx, companyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load stock matrix")
	}
	sales, err := s.repo.RecentSales(ctx, companyID, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load recent sales")
	}

	lastSaleByProduct := make(map[uuid.UUID]time.Time, len(sales))
	for _, row := range sales {
		lastSaleByProduct[row.ProductID] = row.LastSaleAt
	}

	alerts := buildAlerts(matrix, lastSaleByProduct, opts, now)

	if err := s.attachSuppliers(ctx, alerts); err != nil {
		return nil, err
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		si := enums.AlertSeverity(alerts[i].Severity).Rank()
		sj := enums.AlertSeverity(alerts[j].Severity).Rank()
		if si != sj {
			return si < sj
		}
		if alerts[i].StockRatio != alerts[j].StockRatio {
			return alerts[i].StockRatio < alerts[j].StockRatio
		}
		return alerts[i].SKU < alerts[j].SKU
	})

	report := &ReportDTO{
		CompanyID:   companyID,
		GeneratedAt: now,
		WindowDays:  opts.WindowDays,
		TotalAlerts: len(alerts),
		Alerts:      alerts,
	}

	s.toCache(ctx, companyID, opts, report)
	return report, nil
}

func (s *service) normalizeOptions(opts ReportOptions) (ReportOptions, error) {
	if opts.WindowDays == 0 {
		opts.WindowDays = s.defaults.SalesWindowDays
	}
	if opts.UrgentRatio == 0 {
		opts.UrgentRatio = s.defaults.SeverityUrgentRate
	}
	if opts.WindowDays < 1 {
		return opts, pkgerrors.New(pkgerrors.CodeValidation, "sales_window_days must be at least 1")
	}
	if opts.UrgentRatio <= 0 || opts.UrgentRatio >= 1 {
		return opts, pkgerrors.New(pkgerrors.CodeValidation, "severity_urgent_ratio must be between 0 and 1")
	}
	if opts.ThresholdOverridePct != nil {
		pct := *opts.ThresholdOverridePct
		if pct < 0 || pct > 100 {
			return opts, pkgerrors.New(pkgerrors.CodeValidation, "threshold_override_pct must be between 0 and 100")
		}
	}
	return opts, nil
}

// buildAlerts folds the stock matrix into per-product aggregates and keeps
// the products sitting below their aggregate threshold. Products without a
// recent sale are skipped unless the options include them.
func buildAlerts(matrix []StockRow, lastSaleByProduct map[uuid.UUID]time.Time, opts ReportOptions, now time.Time) []AlertDTO {
	type aggregate struct {
		alert          AlertDTO
		totalQuantity  int
		totalThreshold int
	}

	order := make([]uuid.UUID, 0)
	byProduct := make(map[uuid.UUID]*aggregate)

	for _, row := range matrix {
		lastSale, sold := lastSaleByProduct[row.ProductID]
		if !sold && !opts.IncludeNoSales {
			continue
		}

		agg, ok := byProduct[row.ProductID]
		if !ok {
			agg = &aggregate{
				alert: AlertDTO{
					ProductID:   row.ProductID,
					SKU:         row.SKU,
					ProductName: row.ProductName,
					ProductType: row.ProductType.String(),
					Warehouses:  []WarehouseStockDTO{},
					Suppliers:   []SupplierOptionDTO{},
				},
			}
			if sold {
				saleAt := lastSale
				agg.alert.LastSaleAt = &saleAt
				agg.alert.DaysSinceLastSale = int(now.Sub(lastSale).Hours() / 24)
			}
			byProduct[row.ProductID] = agg
			order = append(order, row.ProductID)
		}

		threshold := effectiveThreshold(row, opts.ThresholdOverridePct)
		agg.totalQuantity += row.Quantity
		agg.totalThreshold += threshold
		agg.alert.Warehouses = append(agg.alert.Warehouses, WarehouseStockDTO{
			WarehouseID:        row.WarehouseID,
			WarehouseName:      row.WarehouseName,
			Quantity:           row.Quantity,
			EffectiveThreshold: threshold,
		})
	}

	alerts := make([]AlertDTO, 0, len(order))
	for _, productID := range order {
		agg := byProduct[productID]
		if agg.totalThreshold <= 0 || agg.totalQuantity >= agg.totalThreshold {
			continue
		}

		agg.alert.TotalQuantity = agg.totalQuantity
		agg.alert.TotalThreshold = agg.totalThreshold
		agg.alert.StockRatio = float64(agg.totalQuantity) / float64(agg.totalThreshold)

		severity := enums.AlertSeverityWarning
		if float64(agg.totalQuantity) < opts.UrgentRatio*float64(agg.totalThreshold) {
			severity = enums.AlertSeverityUrgent
		}
		agg.alert.Severity = severity.String()

		alerts = append(alerts, agg.alert)
	}
	return alerts
}

// effectiveThreshold resolves one cell's threshold. The override percentage
// scales type defaults only; explicit per-row thresholds are taken as-is.
func effectiveThreshold(row StockRow, overridePct *float64) int {
	if row.LowStockThreshold != nil {
		return *row.LowStockThreshold
	}
	base := row.ProductType.DefaultLowStockThreshold()
	if overridePct == nil {
		return base
	}
	return int(math.Round(float64(base) * *overridePct / 100))
}

func (s *service) attachSuppliers(ctx context.Context, alerts []AlertDTO) error {
	if len(alerts) == 0 {
		return nil
	}
	productIDs := make([]uuid.UUID, 0, len(alerts))
	for _, alert := range alerts {
		productIDs = append(productIDs, alert.ProductID)
	}

	rows, err := s.supplierRepo.ListForProducts(ctx, productIDs)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load suppliers for alerts")
	}

	byProduct := make(map[uuid.UUID][]SupplierOptionDTO, len(rows))
	for _, row := range rows {
		byProduct[row.ProductID] = append(byProduct[row.ProductID], SupplierOptionDTO{
			SupplierID:           row.SupplierID,
			Name:                 row.SupplierName,
			ContactEmail:         row.ContactEmail,
			ContactPhone:         row.ContactPhone,
			SupplierSKU:          row.SupplierSKU,
			LeadTimeDays:         row.LeadTimeDays,
			MinimumOrderQuantity: row.MinimumOrderQuantity,
			UnitCost:             row.UnitCost,
		})
	}
	for i := range alerts {
		if options, ok := byProduct[alerts[i].ProductID]; ok {
			alerts[i].Suppliers = options
		}
	}
	return nil
}

func (s *service) fromCache(ctx context.Context, companyID uuid.UUID, opts ReportOptions) *ReportDTO {
	if s.cache == nil {
		return nil
	}
	key := s.cache.AlertReportKey(companyID.String(), opts.Fingerprint())
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !redis.IsMiss(err) && s.logg != nil {
			s.logg.Warn(ctx, "alert report cache read failed")
		}
		return nil
	}
	var report ReportDTO
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil
	}
	return &report
}

func (s *service) toCache(ctx context.Context, companyID uuid.UUID, opts ReportOptions, report *ReportDTO) {
	if s.cache == nil || s.defaults.ReportCacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	key := s.cache.AlertReportKey(companyID.String(), opts.Fingerprint())
	if err := s.cache.Set(ctx, key, string(payload), s.defaults.ReportCacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "alert report cache write failed")
	}
}

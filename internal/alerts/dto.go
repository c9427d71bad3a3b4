package alerts

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportOptions tune one low-stock report request. Zero values fall back to
// the service defaults.
type ReportOptions struct {
	// WindowDays is the sales lookback window. Products with no sale inside
	// the window are excluded from the report.
	WindowDays int `json:"window_days"`
	// UrgentRatio is the fraction of the aggregate threshold below which an
	// alert escalates from warning to urgent.
	UrgentRatio float64 `json:"urgent_ratio"`
	// IncludeNoSales keeps products without a sale inside the window in the
	// report instead of dropping them.
	IncludeNoSales bool `json:"include_no_sales"`
	// ThresholdOverridePct scales the type-default thresholds (not explicit
	// per-row thresholds) by a percentage between 0 and 100.
	ThresholdOverridePct *float64 `json:"threshold_override_pct,omitempty"`
}

// Fingerprint folds the options into a short cache key segment.
func (o ReportOptions) Fingerprint() string {
	key := fmt.Sprintf("w%d-r%g", o.WindowDays, o.UrgentRatio)
	if o.ThresholdOverridePct != nil {
		key += fmt.Sprintf("-o%g", *o.ThresholdOverridePct)
	}
	if o.IncludeNoSales {
		key += "-all"
	}
	return key
}

// WarehouseStockDTO is the per-warehouse breakdown inside an alert.
type WarehouseStockDTO struct {
	WarehouseID        uuid.UUID `json:"warehouse_id"`
	WarehouseName      string    `json:"warehouse_name"`
	Quantity           int       `json:"quantity"`
	EffectiveThreshold int       `json:"effective_threshold"`
}

// SupplierOptionDTO is one reorder option attached to an alert.
type SupplierOptionDTO struct {
	SupplierID           uuid.UUID        `json:"supplier_id"`
	Name                 string           `json:"name"`
	ContactEmail         *string          `json:"contact_email,omitempty"`
	ContactPhone         *string          `json:"contact_phone,omitempty"`
	SupplierSKU          *string          `json:"supplier_sku,omitempty"`
	LeadTimeDays         int              `json:"lead_time_days"`
	MinimumOrderQuantity int              `json:"minimum_order_quantity"`
	UnitCost             *decimal.Decimal `json:"unit_cost,omitempty"`
}

// AlertDTO is one low-stock finding, aggregated company-wide.
type AlertDTO struct {
	ProductID         uuid.UUID           `json:"product_id"`
	SKU               string              `json:"sku"`
	ProductName       string              `json:"product_name"`
	ProductType       string              `json:"product_type"`
	TotalQuantity     int                 `json:"total_quantity"`
	TotalThreshold    int                 `json:"total_threshold"`
	StockRatio        float64             `json:"stock_ratio"`
	Severity          string              `json:"severity"`
	LastSaleAt        *time.Time          `json:"last_sale_at,omitempty"`
	DaysSinceLastSale int                 `json:"days_since_last_sale"`
	Warehouses        []WarehouseStockDTO `json:"warehouses"`
	Suppliers         []SupplierOptionDTO `json:"suppliers"`
}

// ReportDTO is the full low-stock report envelope for one company.
type ReportDTO struct {
	CompanyID   uuid.UUID  `json:"company_id"`
	GeneratedAt time.Time  `json:"generated_at"`
	WindowDays  int        `json:"window_days"`
	TotalAlerts int        `json:"total_alerts"`
	Alerts      []AlertDTO `json:"alerts"`
}

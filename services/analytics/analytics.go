package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	bookingModel "vehicle-shipping/models/booking"
	customerModel "vehicle-shipping/models/customer"
	documentModel "vehicle-shipping/models/document"
	paymentModel "vehicle-shipping/models/payment"
	quoteModel "vehicle-shipping/models/quote"
	shipmentModel "vehicle-shipping/models/shipment"
	paymentService "vehicle-shipping/services/payment"
)

// Service answers reporting queries. Everything is read-only; each method
// loads the rows for the requested window and folds them with the pure
// functions below so the arithmetic is testable without a database.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Funnel is the quote-to-delivery conversion summary for a window.
type Funnel struct {
	QuotesCreated  int     `json:"quotes_created"`
	QuotesApproved int     `json:"quotes_approved"`
	Converted      int     `json:"converted"`
	Delivered      int     `json:"delivered"`
	ApprovalRate   float64 `json:"approval_rate"`
	ConversionRate float64 `json:"conversion_rate"`
	CompletionRate float64 `json:"completion_rate"`
}

// FoldFunnel computes the funnel from quotes and the bookings created from
// them. A quote that has moved past approved still counts as approved.
// Expiry is folded in lazily. Every rate is 0 when its denominator is 0.
func FoldFunnel(quotes []quoteModel.Quote, bookings []bookingModel.Booking, at time.Time) Funnel {
	f := Funnel{QuotesCreated: len(quotes)}
	for _, q := range quotes {
		switch q.EffectiveStatus(at) {
		case quoteModel.StatusApproved:
			f.QuotesApproved++
		case quoteModel.StatusConverted:
			f.QuotesApproved++
			f.Converted++
		}
	}
	for _, bk := range bookings {
		if bk.QuoteID == nil {
			continue
		}
		if bk.Status == bookingModel.StatusDelivered || bk.Status == bookingModel.StatusCompleted {
			f.Delivered++
		}
	}
	if f.QuotesCreated > 0 {
		f.ApprovalRate = float64(f.QuotesApproved) / float64(f.QuotesCreated)
	}
	if f.QuotesApproved > 0 {
		f.ConversionRate = float64(f.Converted) / float64(f.QuotesApproved)
	}
	if f.Converted > 0 {
		f.CompletionRate = float64(f.Delivered) / float64(f.Converted)
	}
	return f
}

// ConversionFunnel loads the window and folds the funnel.
func (s *Service) ConversionFunnel(start, end time.Time) (*Funnel, error) {
	var quotes []quoteModel.Quote
	if err := s.db.Where("created_at BETWEEN ? AND ?", start, end).Find(&quotes).Error; err != nil {
		return nil, err
	}
	var bookings []bookingModel.Booking
	if err := s.db.Where("quote_id IS NOT NULL AND created_at BETWEEN ? AND ?", start, end).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	f := FoldFunnel(quotes, bookings, time.Now())
	return &f, nil
}

// RevenueSummary is the money picture for a window compared to the equal
// preceding window.
type RevenueSummary struct {
	GrossRevenue  decimal.Decimal `json:"gross_revenue"`
	Refunded      decimal.Decimal `json:"refunded"`
	NetRevenue    decimal.Decimal `json:"net_revenue"`
	PaymentCount  int             `json:"payment_count"`
	RefundCount   int             `json:"refund_count"`
	GrowthPercent float64         `json:"growth_percent"`
}

// FoldRevenue sums completed payments in the window. Refund rows carry
// negative amounts; they accumulate into Refunded and reduce net revenue,
// which can legitimately go negative. Growth compares against the preceding
// window's net and is 0 when that baseline is 0.
func FoldRevenue(current, previous []paymentModel.Payment) RevenueSummary {
	fold := func(payments []paymentModel.Payment) (gross, refunded decimal.Decimal, nPayments, nRefunds int) {
		gross, refunded = decimal.Zero, decimal.Zero
		for _, p := range payments {
			if p.Status != paymentModel.StatusCompleted && p.Status != paymentModel.StatusRefunded {
				continue
			}
			if p.IsRefund() {
				refunded = refunded.Add(p.Amount.Abs())
				nRefunds++
			} else {
				gross = gross.Add(p.Amount)
				nPayments++
			}
		}
		return gross, refunded, nPayments, nRefunds
	}

	gross, refunded, nPayments, nRefunds := fold(current)
	summary := RevenueSummary{
		GrossRevenue: gross,
		Refunded:     refunded,
		NetRevenue:   gross.Sub(refunded),
		PaymentCount: nPayments,
		RefundCount:  nRefunds,
	}

	prevGross, prevRefunded, _, _ := fold(previous)
	prevNet := prevGross.Sub(prevRefunded)
	if !prevNet.IsZero() {
		growth, _ := summary.NetRevenue.Sub(prevNet).Div(prevNet.Abs()).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		summary.GrowthPercent = growth
	}
	return summary
}

// Revenue loads the window plus the equal preceding window and folds the
// summary.
func (s *Service) Revenue(start, end time.Time) (*RevenueSummary, error) {
	var current []paymentModel.Payment
	if err := s.db.Where("created_at BETWEEN ? AND ?", start, end).Find(&current).Error; err != nil {
		return nil, err
	}

	span := end.Sub(start)
	var previous []paymentModel.Payment
	if err := s.db.Where("created_at BETWEEN ? AND ?", start.Add(-span), start).Find(&previous).Error; err != nil {
		return nil, err
	}

	summary := FoldRevenue(current, previous)
	return &summary, nil
}

// DailyRevenue is one day's net revenue.
type DailyRevenue struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// FoldRevenueByDay buckets net completed revenue per calendar day, sorted
// ascending. Days with no revenue are absent.
func FoldRevenueByDay(payments []paymentModel.Payment) []DailyRevenue {
	byDay := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if p.Status != paymentModel.StatusCompleted && p.Status != paymentModel.StatusRefunded {
			continue
		}
		day := p.CreatedAt.Format("2006-01-02")
		byDay[day] = byDay[day].Add(p.Amount)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	result := make([]DailyRevenue, 0, len(days))
	for _, day := range days {
		result = append(result, DailyRevenue{Date: day, Revenue: byDay[day]})
	}
	return result
}

// RevenueByDay loads the window and buckets it per day.
func (s *Service) RevenueByDay(start, end time.Time) ([]DailyRevenue, error) {
	var payments []paymentModel.Payment
	if err := s.db.Where("created_at BETWEEN ? AND ?", start, end).Find(&payments).Error; err != nil {
		return nil, err
	}
	return FoldRevenueByDay(payments), nil
}

// MethodPerformance reports per-method payment stats for the window.
func (s *Service) MethodPerformance(start, end time.Time) ([]paymentService.MethodStats, error) {
	var payments []paymentModel.Payment
	if err := s.db.Where("created_at BETWEEN ? AND ?", start, end).Find(&payments).Error; err != nil {
		return nil, err
	}
	return paymentService.MethodPerformance(payments), nil
}

// FoldTierDistribution buckets customers by derived tier given each
// customer's cumulative completed spend.
func FoldTierDistribution(spends []decimal.Decimal) map[customerModel.Tier]int {
	dist := map[customerModel.Tier]int{
		customerModel.TierBronze:   0,
		customerModel.TierSilver:   0,
		customerModel.TierGold:     0,
		customerModel.TierPlatinum: 0,
	}
	for _, spend := range spends {
		dist[customerModel.TierForSpend(spend)]++
	}
	return dist
}

// TierDistribution computes each active customer's spend and buckets the
// derived tiers.
func (s *Service) TierDistribution() (map[customerModel.Tier]int, error) {
	type row struct {
		CustomerID uint
		Spent      decimal.Decimal
	}
	var rows []row
	if err := s.db.Model(&paymentModel.Payment{}).
		Select("bookings.customer_id AS customer_id, COALESCE(SUM(payments.amount), 0) AS spent").
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Where("payments.status IN ?", []paymentModel.PaymentStatus{paymentModel.StatusCompleted, paymentModel.StatusRefunded}).
		Group("bookings.customer_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	spends := make([]decimal.Decimal, 0, len(rows))
	for _, r := range rows {
		spends = append(spends, r.Spent)
	}

	// Customers with no payments still count as bronze.
	var totalCustomers int64
	if err := s.db.Model(&customerModel.Customer{}).Count(&totalCustomers).Error; err != nil {
		return nil, err
	}
	for int64(len(spends)) < totalCustomers {
		spends = append(spends, decimal.Zero)
	}

	return FoldTierDistribution(spends), nil
}

// Retention is the repeat-business summary.
type Retention struct {
	TotalCustomers  int     `json:"total_customers"`
	RepeatCustomers int     `json:"repeat_customers"`
	RepeatRate      float64 `json:"repeat_rate"`
}

// FoldRetention computes the repeat rate from per-customer booking counts.
// Rate is 0 when there are no customers with bookings.
func FoldRetention(bookingCounts []int64) Retention {
	r := Retention{TotalCustomers: len(bookingCounts)}
	for _, count := range bookingCounts {
		if count > 1 {
			r.RepeatCustomers++
		}
	}
	if r.TotalCustomers > 0 {
		r.RepeatRate = float64(r.RepeatCustomers) / float64(r.TotalCustomers)
	}
	return r
}

// CustomerRetention folds the repeat rate over all customers with at least
// one non-cancelled booking.
func (s *Service) CustomerRetention() (*Retention, error) {
	var counts []int64
	if err := s.db.Model(&bookingModel.Booking{}).
		Select("COUNT(*)").
		Where("status <> ?", bookingModel.StatusCancelled).
		Group("customer_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	r := FoldRetention(counts)
	return &r, nil
}

// DeliveryPerformance is the fulfillment quality summary for a window.
type DeliveryPerformance struct {
	DeliveredCount int     `json:"delivered_count"`
	OnTimeCount    int     `json:"on_time_count"`
	OnTimeRate     float64 `json:"on_time_rate"`
	AvgTransitDays float64 `json:"avg_transit_days"`
	DelayedCount   int     `json:"delayed_count"`
}

// FoldDeliveryPerformance computes on-time rate and average transit time
// over shipments. Shipments missing either arrival date are excluded from
// the on-time rate; rates are 0 on zero denominators.
func FoldDeliveryPerformance(shipments []shipmentModel.Shipment) DeliveryPerformance {
	perf := DeliveryPerformance{}
	measurable := 0
	transitTotal := 0.0
	transitCount := 0
	for _, sh := range shipments {
		if sh.Status == shipmentModel.StatusDelayed {
			perf.DelayedCount++
		}
		if sh.Status != shipmentModel.StatusDelivered {
			continue
		}
		perf.DeliveredCount++
		if onTime, known := sh.WasOnTime(); known {
			measurable++
			if onTime {
				perf.OnTimeCount++
			}
		}
		if days := sh.TransitDays(); days > 0 {
			transitTotal += days
			transitCount++
		}
	}
	if measurable > 0 {
		perf.OnTimeRate = float64(perf.OnTimeCount) / float64(measurable)
	}
	if transitCount > 0 {
		perf.AvgTransitDays = transitTotal / float64(transitCount)
	}
	return perf
}

// Deliveries loads the window and folds delivery performance.
func (s *Service) Deliveries(start, end time.Time) (*DeliveryPerformance, error) {
	var shipments []shipmentModel.Shipment
	if err := s.db.Where("created_at BETWEEN ? AND ?", start, end).Find(&shipments).Error; err != nil {
		return nil, err
	}
	perf := FoldDeliveryPerformance(shipments)
	return &perf, nil
}

// OperationalMetrics is the live backlog snapshot shown to operators.
type OperationalMetrics struct {
	PendingQuotes     int64 `json:"pending_quotes"`
	PendingDocuments  int64 `json:"pending_documents"`
	OverduePayments   int64 `json:"overdue_payments"`
	DelayedShipments  int64 `json:"delayed_shipments"`
	ExpiringDocuments int64 `json:"expiring_documents"`
	ActiveBookings    int64 `json:"active_bookings"`
}

// Operations counts the current backlogs.
func (s *Service) Operations(at time.Time) (*OperationalMetrics, error) {
	m := OperationalMetrics{}

	if err := s.db.Model(&quoteModel.Quote{}).
		Where("status = ? AND valid_until > ?", quoteModel.StatusPending, at).
		Count(&m.PendingQuotes).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&documentModel.Document{}).
		Where("status = ?", documentModel.StatusPending).
		Count(&m.PendingDocuments).Error; err != nil {
		return nil, err
	}
	overdueCutoff := at.AddDate(0, 0, -paymentService.OverdueDays())
	if err := s.db.Model(&paymentModel.Payment{}).
		Where("status = ? AND created_at < ?", paymentModel.StatusPending, overdueCutoff).
		Count(&m.OverduePayments).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&shipmentModel.Shipment{}).
		Where("status = ?", shipmentModel.StatusDelayed).
		Count(&m.DelayedShipments).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&documentModel.Document{}).
		Where("status = ? AND expiry_date BETWEEN ? AND ?",
			documentModel.StatusApproved, at, at.AddDate(0, 0, 30)).
		Count(&m.ExpiringDocuments).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&bookingModel.Booking{}).
		Where("status NOT IN ?", []bookingModel.BookingStatus{
			bookingModel.StatusCompleted, bookingModel.StatusCancelled,
		}).
		Count(&m.ActiveBookings).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Dashboard bundles the headline numbers for the overview screen.
type Dashboard struct {
	Funnel     Funnel              `json:"funnel"`
	Revenue    RevenueSummary      `json:"revenue"`
	Deliveries DeliveryPerformance `json:"deliveries"`
	Operations OperationalMetrics  `json:"operations"`
	Retention  Retention           `json:"retention"`
}

// DashboardKPIs assembles the overview for the window.
func (s *Service) DashboardKPIs(start, end time.Time) (*Dashboard, error) {
	funnel, err := s.ConversionFunnel(start, end)
	if err != nil {
		return nil, err
	}
	revenue, err := s.Revenue(start, end)
	if err != nil {
		return nil, err
	}
	deliveries, err := s.Deliveries(start, end)
	if err != nil {
		return nil, err
	}
	operations, err := s.Operations(time.Now())
	if err != nil {
		return nil, err
	}
	retention, err := s.CustomerRetention()
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Funnel:     *funnel,
		Revenue:    *revenue,
		Deliveries: *deliveries,
		Operations: *operations,
		Retention:  *retention,
	}, nil
}

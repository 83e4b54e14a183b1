package delivery

import (
	"context"
	"errors"
	"io"

	"github.com/shopspring/decimal"
)

var (
	// DefaultWeeksPerMonth converts weekly amounts to a monthly equivalent.
	DefaultWeeksPerMonth = decimal.RequireFromString("4.33")

	// DefaultWeekdayTokens are the day tokens counted per weekday.
	DefaultWeekdayTokens = []string{"M", "T", "W", "Th", "F"}
)

// Options tunes the aggregation. The zero value uses the defaults.
type Options struct {
	// WeeksPerMonth is the average number of weeks in a month.
	WeeksPerMonth decimal.Decimal

	// WeekdayTokens are the day tokens counted in DeliveriesPerWeekday.
	// Tokens must match exactly; anything else in a day list is not counted
	// as a weekday.
	WeekdayTokens []string
}

// DefaultOptions returns the default aggregation options.
func DefaultOptions() Options {
	return Options{
		WeeksPerMonth: DefaultWeeksPerMonth,
		WeekdayTokens: append([]string(nil), DefaultWeekdayTokens...),
	}
}

func (opts Options) withDefaults() Options {
	if opts.WeeksPerMonth.IsZero() {
		opts.WeeksPerMonth = DefaultWeeksPerMonth
	}
	if len(opts.WeekdayTokens) == 0 {
		opts.WeekdayTokens = DefaultWeekdayTokens
	}
	return opts
}

// Result holds the aggregates computed from one delivery log.
type Result struct {
	// DeliveriesPerPerson is the total number of delivery days per delivery
	// person.
	DeliveriesPerPerson map[string]int

	// DeliveriesPerWeekday is the number of records listing each weekday
	// token.
	DeliveriesPerWeekday map[string]int

	// MonthlyDeliveriesPerPerson is the number of monthly records per
	// delivery person.
	MonthlyDeliveriesPerPerson map[string]int

	// WeeklyDeliveriesPerPerson is the number of weekly records per delivery
	// person.
	WeeklyDeliveriesPerPerson map[string]int

	// CostPerCustomer is the estimated monthly cost per customer.
	CostPerCustomer map[string]decimal.Decimal

	Stats Stats
}

// Stats counts the records that went into a Result.
type Stats struct {
	Rows      int
	ByCadence [CadenceMax]int
}

func newResult() *Result {
	return &Result{
		DeliveriesPerPerson:        make(map[string]int),
		DeliveriesPerWeekday:       make(map[string]int),
		MonthlyDeliveriesPerPerson: make(map[string]int),
		WeeklyDeliveriesPerPerson:  make(map[string]int),
		CostPerCustomer:            make(map[string]decimal.Decimal),
	}
}

// Aggregator folds delivery records into a Result one record at a time.
// An Aggregator is not safe for concurrent use; use one per input.
type Aggregator struct {
	weeksPerMonth decimal.Decimal
	weekdays      map[string]struct{}
	result        *Result
}

// NewAggregator returns an empty Aggregator. Zero fields in opts take their
// defaults.
func NewAggregator(opts Options) *Aggregator {
	opts = opts.withDefaults()
	weekdays := make(map[string]struct{}, len(opts.WeekdayTokens))
	for _, token := range opts.WeekdayTokens {
		weekdays[token] = struct{}{}
	}
	return &Aggregator{
		weeksPerMonth: opts.WeeksPerMonth,
		weekdays:      weekdays,
		result:        newResult(),
	}
}

// Add folds one record into the aggregates and returns its cadence.
func (agg *Aggregator) Add(rec Record) Cadence {
	result := agg.result
	dayCount := ParseDeliveryDayCount(rec.DeliveryDays)

	result.DeliveriesPerPerson[rec.DeliveryPersonID] += dayCount

	for _, token := range dayTokens(rec.DeliveryDays) {
		if _, ok := agg.weekdays[token]; ok {
			result.DeliveriesPerWeekday[token]++
		}
	}

	var cost decimal.Decimal
	cadence := Classify(rec.DeliveryDays)
	switch cadence {
	case Monthly:
		result.MonthlyDeliveriesPerPerson[rec.DeliveryPersonID]++
		cost = ParseCurrency(rec.MonthlyBilling)
	case Weekly:
		result.WeeklyDeliveriesPerPerson[rec.DeliveryPersonID]++
		cost = ParseCurrency(rec.WeeklyBilling).Mul(agg.weeksPerMonth)
	default:
		cost = ParseCurrency(rec.IndividualCost).
			Mul(decimal.NewFromInt(int64(dayCount))).
			Mul(agg.weeksPerMonth)
	}
	result.CostPerCustomer[rec.CustomerID] = result.CostPerCustomer[rec.CustomerID].Add(cost)

	result.Stats.Rows++
	result.Stats.ByCadence[cadence]++
	return cadence
}

// Finalize returns the aggregates collected so far and resets the
// Aggregator. The returned Result is never touched by the Aggregator again.
func (agg *Aggregator) Finalize() *Result {
	result := agg.result
	agg.result = newResult()
	return result
}

// Aggregate computes the aggregates for a slice of records.
func Aggregate(records []Record, opts Options) *Result {
	agg := NewAggregator(opts)
	for _, rec := range records {
		agg.Add(rec)
	}
	return agg.Finalize()
}

// RecordReader is a source of delivery records. Read returns io.EOF after the
// last record.
type RecordReader interface {
	Read() (Record, error)
}

// AggregateFrom reads records until io.EOF and returns their aggregates. Any
// other read error aborts the pass and no partial Result is returned.
func AggregateFrom(ctx context.Context, r RecordReader, opts Options) (*Result, error) {
	agg := NewAggregator(opts)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return agg.Finalize(), nil
		}
		if err != nil {
			return nil, err
		}
		agg.Add(rec)
	}
}

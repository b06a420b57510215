package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Sport is the category of a field; it determines the hourly price
type Sport string

const (
	SportFutsal     Sport = "Futsal"
	SportMiniSoccer Sport = "MiniSoccer"
	SportBadminton  Sport = "Badminton"
	SportPadel      Sport = "Padel"
)

// Sports lists every supported sport
var Sports = []Sport{SportFutsal, SportMiniSoccer, SportBadminton, SportPadel}

var (
	ErrUnknownSport        = errors.New("domain: unknown sport")
	ErrSportNotPriced      = errors.New("domain: sport has no price")
	ErrInvalidAvailability = errors.New("domain: invalid availability rule")
	ErrEmptyFieldName      = errors.New("domain: field name is required")
)

// ParseSport validates a sport name
func ParseSport(s string) (Sport, error) {
	for _, sp := range Sports {
		if string(sp) == s {
			return sp, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSport, s)
}

// PriceTable maps a sport to its fixed hourly price
type PriceTable map[Sport]decimal.Decimal

// DefaultPriceTable returns the stock hourly prices
func DefaultPriceTable() PriceTable {
	return PriceTable{
		SportFutsal:     decimal.NewFromInt(150000),
		SportMiniSoccer: decimal.NewFromInt(250000),
		SportBadminton:  decimal.NewFromInt(50000),
		SportPadel:      decimal.NewFromInt(200000),
	}
}

// PriceFor returns the hourly price for a sport
func (p PriceTable) PriceFor(sport Sport) (decimal.Decimal, error) {
	price, ok := p[sport]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrSportNotPriced, sport)
	}
	return price, nil
}

// DayAvailability is the opening window of a field on one day of the week (0 = Sunday)
type DayAvailability struct {
	DayOfWeek int
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// Window returns the open/close boundaries in minutes since midnight
func (a DayAvailability) Window() (openMinutes int, closeMinutes int, err error) {
	openMinutes, err = a.OpenTime.Minutes()
	if err != nil {
		return 0, 0, err
	}
	if err := a.CloseTime.ValidateClosing(); err != nil {
		return 0, 0, err
	}
	closeMinutes, err = a.CloseTime.Minutes()
	if err != nil {
		return 0, 0, err
	}
	return openMinutes, closeMinutes, nil
}

// Validate checks the rule on its own
func (a DayAvailability) Validate() error {
	if a.DayOfWeek < 0 || a.DayOfWeek > 6 {
		return fmt.Errorf("%w: day of week %d", ErrInvalidAvailability, a.DayOfWeek)
	}
	if err := a.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidAvailability, err)
	}
	openMinutes, closeMinutes, err := a.Window()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAvailability, err)
	}
	if closeMinutes <= openMinutes {
		return fmt.Errorf("%w: close %s must be after open %s", ErrInvalidAvailability, a.CloseTime, a.OpenTime)
	}
	return nil
}

// Field is a rentable sports field
type Field struct {
	ID           int64
	Name         string
	Sport        Sport
	PricePerHour decimal.Decimal
	Availability []DayAvailability
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewField builds an active field, deriving its price from the price table
func NewField(name string, sport Sport, availability []DayAvailability, prices PriceTable) (*Field, error) {
	f := &Field{IsActive: true}
	if err := f.Apply(name, sport, availability, prices); err != nil {
		return nil, err
	}
	return f, nil
}

// Apply replaces the editable attributes of the field. The price always follows the sport.
func (f *Field) Apply(name string, sport Sport, availability []DayAvailability, prices PriceTable) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyFieldName
	}
	if _, err := ParseSport(string(sport)); err != nil {
		return err
	}
	price, err := prices.PriceFor(sport)
	if err != nil {
		return err
	}

	rules, err := normalizeAvailability(availability)
	if err != nil {
		return err
	}

	f.Name = name
	f.Sport = sport
	f.PricePerHour = price
	f.Availability = rules
	return nil
}

// AvailabilityFor returns the rule for the weekday of date, if the field opens that day
func (f *Field) AvailabilityFor(date time.Time) (DayAvailability, bool) {
	day := int(date.Weekday())
	for _, rule := range f.Availability {
		if rule.DayOfWeek == day {
			return rule, true
		}
	}
	return DayAvailability{}, false
}

// normalizeAvailability validates rules, rejects duplicate days and orders them by day
func normalizeAvailability(rules []DayAvailability) ([]DayAvailability, error) {
	seen := make(map[int]struct{}, len(rules))
	out := make([]DayAvailability, 0, len(rules))

	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[rule.DayOfWeek]; dup {
			return nil, fmt.Errorf("%w: duplicate day of week %d", ErrInvalidAvailability, rule.DayOfWeek)
		}
		seen[rule.DayOfWeek] = struct{}{}
		out = append(out, rule)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

// FieldFilter filters field listings
type FieldFilter struct {
	Sport *Sport
}

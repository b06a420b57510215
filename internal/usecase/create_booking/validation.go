package create_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/sanitizer"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// validateDate проверяет, что дата не в прошлом и не дальше горизонта бронирования
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	today := domain.DateOnly(now, now.Location())

	if date.Before(today) {
		return ErrPastDate
	}

	maxDate := today.AddDate(0, 0, advanceBookingDays)
	if date.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// parseInterval разбирает время начала и окончания
func parseInterval(startRaw, endRaw string) (types.TimeString, types.TimeString, domain.Interval, error) {
	start, err := types.NewTimeStringFromString(startRaw)
	if err != nil {
		return "", "", domain.Interval{}, fmt.Errorf("%w: start time: %v", ErrInvalidTime, err)
	}

	end, err := types.NewTimeStringFromString(endRaw)
	if err != nil {
		return "", "", domain.Interval{}, fmt.Errorf("%w: end time: %v", ErrInvalidTime, err)
	}

	interval, err := domain.NewInterval(start, end)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInterval) {
			return "", "", domain.Interval{}, ErrInvalidTimeRange
		}
		return "", "", domain.Interval{}, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	if !interval.OnStep() {
		return "", "", domain.Interval{}, fmt.Errorf("%w: %d minutes, step is %d",
			ErrInvalidDuration, interval.Minutes(), domain.BookingStepMinutes)
	}

	return start, end, interval, nil
}

// validateOpeningHours проверяет расписание поля на день недели даты
func validateOpeningHours(field *domain.Field, date time.Time, interval domain.Interval) error {
	rule, ok := field.AvailabilityFor(date)
	if !ok {
		return ErrFieldClosed
	}

	openMinutes, closeMinutes, err := rule.Window()
	if err != nil {
		return fmt.Errorf("%w: broken availability rule for field id=%d: %v", ErrInternal, field.ID, err)
	}

	if !interval.Within(openMinutes, closeMinutes) {
		return fmt.Errorf("%w: field opens %s-%s", ErrOutsideOpenHours, rule.OpenTime, rule.CloseTime)
	}

	return nil
}

// validateCustomer проверяет контактные данные клиента и заметки
func validateCustomer(req *Request) error {
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerPhone) == "" {
		return ErrCustomerInfoRequired
	}

	if utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// normalizePhone приводит телефон клиента к E.164, нераспознанный номер сохраняется как есть
func normalizePhone(phone string) string {
	if normalized := sanitizer.NormalizePhone(phone); normalized != "" {
		return normalized
	}
	return strings.TrimSpace(phone)
}

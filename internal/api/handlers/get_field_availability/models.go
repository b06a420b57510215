package get_field_availability

import (
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	getFieldAvailability "github.com/m04kA/SMC-FieldBookingService/internal/usecase/get_field_availability"
)

// SlotResponse занятый интервал
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	FieldID     int64          `json:"fieldId"`
	Date        string         `json:"date"`
	IsOpen      bool           `json:"isOpen"`
	OpenTime    *string        `json:"openTime,omitempty"`
	CloseTime   *string        `json:"closeTime,omitempty"`
	BookedSlots []SlotResponse `json:"bookedSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFieldAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		FieldID:     resp.FieldID,
		Date:        resp.Date.Format(domain.DateFormat),
		IsOpen:      resp.IsOpen,
		BookedSlots: make([]SlotResponse, 0, len(resp.Booked)),
	}

	if resp.OpenTime != nil {
		s := resp.OpenTime.String()
		out.OpenTime = &s
	}
	if resp.CloseTime != nil {
		s := resp.CloseTime.String()
		out.CloseTime = &s
	}

	for _, slot := range resp.Booked {
		out.BookedSlots = append(out.BookedSlots, SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		})
	}

	return out
}

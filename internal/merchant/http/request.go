package http

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/ifood-integration/internal/validation"
)

// InterruptionRequest describes a sales interruption window. Field names
// follow the remote payload.
type InterruptionRequest struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description"`
}

// Validate checks if the interruption request is valid.
func (r InterruptionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Start, validation.Required),
		validation.Field(&r.End, validation.Required),
		validation.Field(&r.Description, validation.Length(0, 500)),
	)
}

// OpeningShift is one opening window within a weekday. Field names follow
// the remote payload.
type OpeningShift struct {
	DayOfWeek string `json:"dayOfWeek"`
	Start     string `json:"start"`
	Duration  int    `json:"duration"`
}

// Validate checks if the opening shift is valid.
func (s OpeningShift) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.DayOfWeek,
			validation.Required,
			validation.In(
				"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY",
				"FRIDAY", "SATURDAY", "SUNDAY",
			),
		),
		validation.Field(&s.Start, validation.Required, customValidation.NotBlank),
		validation.Field(&s.Duration, validation.Required, validation.Min(1), validation.Max(24*60)),
	)
}

// OpeningHoursRequest replaces the whole weekly schedule. Days without a
// shift become closed.
type OpeningHoursRequest struct {
	Shifts []OpeningShift `json:"shifts"`
}

// Validate checks if the opening hours request is valid.
func (r OpeningHoursRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Shifts, validation.Required),
	)
}

package appointment

import (
	"context"

	"psycenter/internal/domain"
	"psycenter/internal/modules/notify"
	"psycenter/internal/repository"
)

// AppointmentRepository defines the storage operations the service needs.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error
	List(ctx context.Context, opts repository.ListOptions) ([]domain.Appointment, error)
	OccupiedTimes(ctx context.Context, psychologistID int64, date string, excludeID string) ([]string, error)
}

// PsychologistReader resolves the specialist an appointment points at.
type PsychologistReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Psychologist, error)
}

// Dispatcher is the best-effort notification fan-out. Outcomes are logged
// by the service, never turned into request failures.
type Dispatcher interface {
	AppointmentCreated(ctx context.Context, a *domain.Appointment, psychologistName string) notify.Outcome
	AppointmentConfirmed(ctx context.Context, a *domain.Appointment, psychologistName string) notify.Outcome
	AppointmentCancelled(ctx context.Context, a *domain.Appointment, psychologistName, reason string) notify.Outcome
	AppointmentRescheduled(ctx context.Context, a *domain.Appointment, psychologistName, oldDate, oldTime string) notify.Outcome
	EmailTemplate(template string, a *domain.Appointment, psychologistName string) (subject, body string, err error)
	SendEmail(a *domain.Appointment, subject, body string) error
}

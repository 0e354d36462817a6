package repository

import (
	"context"
	"errors"
	"time"

	"psycenter/internal/domain"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type appointmentModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	PsychologistID  int64     `gorm:"column:psychologist_id;index:idx_appointments_psych_date"`
	ClientName      string    `gorm:"column:client_name"`
	ClientPhone     string    `gorm:"column:client_phone"`
	ClientEmail     *string   `gorm:"column:client_email"`
	AppointmentDate string    `gorm:"column:appointment_date;index:idx_appointments_psych_date"`
	AppointmentTime string    `gorm:"column:appointment_time"`
	Status          string    `gorm:"column:status;index"`
	Notes           *string   `gorm:"column:notes"`
	CancelledBy     *string   `gorm:"column:cancelled_by"`
	CancelledByName *string   `gorm:"column:cancelled_by_name"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (appointmentModel) TableName() string { return "appointments" }

func toDomainAppointment(m appointmentModel) *domain.Appointment {
	a := &domain.Appointment{
		ID:              m.ID,
		PsychologistID:  m.PsychologistID,
		ClientName:      m.ClientName,
		ClientPhone:     m.ClientPhone,
		AppointmentDate: m.AppointmentDate,
		AppointmentTime: m.AppointmentTime,
		Status:          domain.AppointmentStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.ClientEmail != nil {
		a.ClientEmail = *m.ClientEmail
	}
	if m.Notes != nil {
		a.Notes = *m.Notes
	}
	if m.CancelledBy != nil {
		a.CancelledBy = domain.CancelActor(*m.CancelledBy)
	}
	if m.CancelledByName != nil {
		a.CancelledByName = *m.CancelledByName
	}
	return a
}

func toAppointmentModel(a *domain.Appointment) appointmentModel {
	m := appointmentModel{
		ID:              a.ID,
		PsychologistID:  a.PsychologistID,
		ClientName:      a.ClientName,
		ClientPhone:     a.ClientPhone,
		AppointmentDate: a.AppointmentDate,
		AppointmentTime: a.AppointmentTime,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.ClientEmail != "" {
		v := a.ClientEmail
		m.ClientEmail = &v
	}
	if a.Notes != "" {
		v := a.Notes
		m.Notes = &v
	}
	if a.CancelledBy != "" {
		v := string(a.CancelledBy)
		m.CancelledBy = &v
	}
	if a.CancelledByName != "" {
		v := a.CancelledByName
		m.CancelledByName = &v
	}
	return m
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	m := toAppointmentModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAppointment(m)
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	var m appointmentModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainAppointment(m), nil
}

// Update persists the full row and refreshes updated_at.
func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	a.UpdatedAt = time.Now()
	m := toAppointmentModel(a)
	tx := r.db.WithContext(ctx).Model(&appointmentModel{}).
		Where("id = ?", m.ID).
		Select("*").Omit("id", "created_at").
		Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListOptions narrows List. Zero values mean "no filter".
type ListOptions struct {
	Status   string
	DateFrom string
	DateTo   string
}

func (r *AppointmentRepository) List(ctx context.Context, opts ListOptions) ([]domain.Appointment, error) {
	q := r.db.WithContext(ctx).Model(&appointmentModel{})
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}
	if opts.DateFrom != "" {
		q = q.Where("appointment_date >= ?", opts.DateFrom)
	}
	if opts.DateTo != "" {
		q = q.Where("appointment_date <= ?", opts.DateTo)
	}

	var rows []appointmentModel
	if err := q.Order("appointment_date ASC, appointment_time ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Appointment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainAppointment(m))
	}
	return out, nil
}

// OccupiedTimes returns the appointment_time values blocking slots for the
// given psychologist/date: pending and confirmed rows only, cancelled rows
// free their slot. excludeID drops one appointment from the occupied set,
// used when that appointment itself is being rescheduled.
func (r *AppointmentRepository) OccupiedTimes(ctx context.Context, psychologistID int64, date string, excludeID string) ([]string, error) {
	q := r.db.WithContext(ctx).Model(&appointmentModel{}).
		Where("psychologist_id = ? AND appointment_date = ?", psychologistID, date).
		Where("status IN ?", []string{string(domain.AppointmentPending), string(domain.AppointmentConfirmed)})
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var times []string
	if err := q.Pluck("appointment_time", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

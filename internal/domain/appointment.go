package domain

import "time"

// AppointmentStatus — жизненный цикл записи.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// CancelActor — кто отменил запись.
type CancelActor string

const (
	CancelledByClient       CancelActor = "client"
	CancelledByAdmin        CancelActor = "admin"
	CancelledByPsychologist CancelActor = "psychologist"
)

type Appointment struct {
	ID             string
	PsychologistID int64

	ClientName  string
	ClientPhone string
	ClientEmail string

	// AppointmentDate is "2006-01-02", AppointmentTime is "15:04".
	AppointmentDate string
	AppointmentTime string

	Status          AppointmentStatus
	Notes           string
	CancelledBy     CancelActor
	CancelledByName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

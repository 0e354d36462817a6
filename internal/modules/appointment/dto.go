package appointment

type CreateAppointmentRequest struct {
	PsychologistID  int64  `json:"psychologist_id" binding:"required" validate:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required" validate:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required" validate:"required"`
	ClientName      string `json:"client_name" binding:"required" validate:"required,max=200"`
	ClientPhone     string `json:"client_phone" binding:"required" validate:"required,max=32"`
	ClientEmail     string `json:"client_email" validate:"omitempty,email"`
	Notes           string `json:"notes" validate:"max=2000"`
}

type CancelAppointmentRequest struct {
	Reason          string `json:"reason"`
	CancelledBy     string `json:"cancelled_by" binding:"required,oneof=client admin psychologist"`
	CancelledByName string `json:"cancelled_by_name"`
}

type RescheduleAppointmentRequest struct {
	AppointmentDate string `json:"appointment_date" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
	ClientName      string `json:"client_name"`
	ClientPhone     string `json:"client_phone"`
	ClientEmail     string `json:"client_email"`
}

type SendEmailRequest struct {
	Template string `json:"template" binding:"required,oneof=created confirmed cancelled"`
}

// AvailabilityResponse lists free slots for one psychologist/date, already
// split into the form's display buckets.
type AvailabilityResponse struct {
	PsychologistID int64    `json:"psychologist_id"`
	Date           string   `json:"date"`
	Slots          []string `json:"slots"`
	Day            []string `json:"day"`
	Evening        []string `json:"evening"`
}

// AppointmentView is the public shape of one appointment, with the joined
// psychologist display name for the status page.
type AppointmentView struct {
	ID               string `json:"id"`
	PsychologistID   int64  `json:"psychologist_id"`
	PsychologistName string `json:"psychologist_name,omitempty"`
	ClientName       string `json:"client_name"`
	ClientPhone      string `json:"client_phone"`
	ClientEmail      string `json:"client_email,omitempty"`
	AppointmentDate  string `json:"appointment_date"`
	AppointmentTime  string `json:"appointment_time"`
	Status           string `json:"status"`
	Notes            string `json:"notes,omitempty"`
	CancelledBy      string `json:"cancelled_by,omitempty"`
	CancelledByName  string `json:"cancelled_by_name,omitempty"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

package appointment

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"psycenter/internal/domain"
	"psycenter/internal/modules/notify"
	"psycenter/internal/repository"

	"github.com/google/uuid"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	appointments  AppointmentRepository
	psychologists PsychologistReader
	notifs        Dispatcher
}

func NewService(
	appointments AppointmentRepository,
	psychologists PsychologistReader,
	notifs Dispatcher,
) *Service {
	return &Service{
		appointments:  appointments,
		psychologists: psychologists,
		notifs:        notifs,
	}
}

// Availability returns the free slots for one psychologist/date. Days the
// center does not work (not Tuesday/Thursday) and past days have no slots
// at all. excludeID removes that appointment's own row from the occupied
// set so a reschedule form can offer switching to a different slot.
func (s *Service) Availability(ctx context.Context, psychologistID int64, dateStr, excludeID string) (*AvailabilityResponse, error) {
	day, err := ParseDate(dateStr)
	if err != nil {
		return nil, ErrValidation
	}

	resp := &AvailabilityResponse{
		PsychologistID: psychologistID,
		Date:           dateStr,
		Slots:          []string{},
		Day:            []string{},
		Evening:        []string{},
	}

	if !IsBookableWeekday(day) || IsPastDay(day, time.Now()) {
		return resp, nil
	}

	occupied, err := s.appointments.OccupiedTimes(ctx, psychologistID, dateStr, excludeID)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(occupied))
	for _, t := range occupied {
		taken[NormalizeTime(t)] = true
	}

	for _, slot := range DaySlots() {
		if !taken[slot] {
			resp.Slots = append(resp.Slots, slot)
		}
	}
	resp.Day, resp.Evening = SplitDayEvening(resp.Slots)

	return resp, nil
}

// Create books a pending appointment. The Tuesday/Thursday and not-in-the-
// past rules are enforced by the booking form; the backend deliberately
// keeps accepting any parseable date so existing clients keep working
// (availability for such days is empty, so the form never offers them).
func (s *Service) Create(ctx context.Context, req CreateAppointmentRequest) (*domain.Appointment, error) {
	if _, err := ParseDate(req.AppointmentDate); err != nil {
		return nil, ErrValidation
	}
	req.AppointmentTime = NormalizeTime(req.AppointmentTime)
	if _, err := time.Parse(timeLayout, req.AppointmentTime); err != nil {
		return nil, ErrValidation
	}
	if req.ClientEmail != "" && !emailRe.MatchString(req.ClientEmail) {
		return nil, ErrValidation
	}

	psych, err := s.psychologists.GetByID(ctx, req.PsychologistID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrPsychologistNotFound
		}
		return nil, err
	}

	if err := s.ensureSlotFree(ctx, req.PsychologistID, req.AppointmentDate, req.AppointmentTime, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	a := &domain.Appointment{
		ID:              uuid.NewString(),
		PsychologistID:  req.PsychologistID,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		ClientEmail:     req.ClientEmail,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Status:          domain.AppointmentPending,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logOutcome("created", a.ID, s.notifs.AppointmentCreated(ctx, a, psych.DisplayName()))

	return a, nil
}

// Confirm moves an appointment to confirmed. Confirming an already
// confirmed appointment is idempotent for state but re-sends the
// notifications. Cancelled appointments stay cancelled.
func (s *Service) Confirm(ctx context.Context, id string) (*domain.Appointment, error) {
	a, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == domain.AppointmentCancelled {
		return nil, ErrAlreadyCancelled
	}

	a.Status = domain.AppointmentConfirmed
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}

	s.logOutcome("confirmed", a.ID, s.notifs.AppointmentConfirmed(ctx, a, s.psychologistName(ctx, a.PsychologistID)))

	return a, nil
}

// Cancel marks the appointment cancelled, records who did it and appends
// an annotation line to the notes without touching the client's original
// comment.
func (s *Service) Cancel(ctx context.Context, id string, req CancelAppointmentRequest) (*domain.Appointment, error) {
	a, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Status = domain.AppointmentCancelled
	a.CancelledBy = domain.CancelActor(req.CancelledBy)
	a.CancelledByName = req.CancelledByName
	a.Notes = appendNote(a.Notes, cancelAnnotation(a.CancelledBy, req.CancelledByName, req.Reason))

	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}

	s.logOutcome("cancelled", a.ID, s.notifs.AppointmentCancelled(ctx, a, s.psychologistName(ctx, a.PsychologistID), req.Reason))

	return a, nil
}

// Reschedule moves the appointment to a new date/time and force-resets the
// status to pending: a changed slot needs staff approval again. Contact
// fields are replaced when the form re-submits them.
func (s *Service) Reschedule(ctx context.Context, id string, req RescheduleAppointmentRequest) (*domain.Appointment, error) {
	a, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == domain.AppointmentCancelled {
		return nil, ErrAlreadyCancelled
	}

	if _, err := ParseDate(req.AppointmentDate); err != nil {
		return nil, ErrValidation
	}
	req.AppointmentTime = NormalizeTime(req.AppointmentTime)
	if _, err := time.Parse(timeLayout, req.AppointmentTime); err != nil {
		return nil, ErrValidation
	}
	if req.ClientEmail != "" && !emailRe.MatchString(req.ClientEmail) {
		return nil, ErrValidation
	}

	if err := s.ensureSlotFree(ctx, a.PsychologistID, req.AppointmentDate, req.AppointmentTime, a.ID); err != nil {
		return nil, err
	}

	oldDate, oldTime := a.AppointmentDate, a.AppointmentTime

	a.AppointmentDate = req.AppointmentDate
	a.AppointmentTime = req.AppointmentTime
	if req.ClientName != "" {
		a.ClientName = req.ClientName
	}
	if req.ClientPhone != "" {
		a.ClientPhone = req.ClientPhone
	}
	if req.ClientEmail != "" {
		a.ClientEmail = req.ClientEmail
	}
	a.Status = domain.AppointmentPending
	a.Notes = appendNote(a.Notes, fmt.Sprintf("Перенос: было %s %s, стало %s %s",
		oldDate, oldTime, a.AppointmentDate, a.AppointmentTime))

	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}

	s.logOutcome("rescheduled", a.ID,
		s.notifs.AppointmentRescheduled(ctx, a, s.psychologistName(ctx, a.PsychologistID), oldDate, oldTime))

	return a, nil
}

func (s *Service) List(ctx context.Context, opts repository.ListOptions) ([]domain.Appointment, error) {
	return s.appointments.List(ctx, opts)
}

// Get returns one appointment with the psychologist display name joined
// in. Serves the public status page: knowledge of the opaque id is the
// only access control.
func (s *Service) Get(ctx context.Context, id string) (*AppointmentView, error) {
	a, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(a)
	view.PsychologistName = s.psychologistName(ctx, a.PsychologistID)
	return view, nil
}

// SendTemplatedEmail re-sends one of the client email templates for an
// appointment. Unlike the lifecycle notifications this is the whole point
// of the call, so delivery errors do propagate.
func (s *Service) SendTemplatedEmail(ctx context.Context, id, template string) error {
	a, err := s.getExisting(ctx, id)
	if err != nil {
		return err
	}
	subject, body, err := s.notifs.EmailTemplate(template, a, s.psychologistName(ctx, a.PsychologistID))
	if err != nil {
		return ErrValidation
	}
	return s.notifs.SendEmail(a, subject, body)
}

func (s *Service) getExisting(ctx context.Context, id string) (*domain.Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) ensureSlotFree(ctx context.Context, psychologistID int64, date, timeStr, excludeID string) error {
	occupied, err := s.appointments.OccupiedTimes(ctx, psychologistID, date, excludeID)
	if err != nil {
		return err
	}
	for _, t := range occupied {
		if NormalizeTime(t) == timeStr {
			return ErrSlotTaken
		}
	}
	return nil
}

// psychologistName tolerates a dangling reference: notifications still go
// out, just without the name.
func (s *Service) psychologistName(ctx context.Context, id int64) string {
	p, err := s.psychologists.GetByID(ctx, id)
	if err != nil {
		return ""
	}
	return p.DisplayName()
}

func (s *Service) logOutcome(event, id string, out notify.Outcome) {
	if !out.Ok() {
		log.Printf("appointment: notify incomplete event=%s appointment=%s telegram_err=%v email_err=%v",
			event, id, out.TelegramErr, out.EmailErr)
	}
}

func appendNote(existing, line string) string {
	if existing == "" {
		return line
	}
	return existing + "\n" + line
}

func cancelAnnotation(by domain.CancelActor, byName, reason string) string {
	var who string
	switch by {
	case domain.CancelledByClient:
		who = "клиентом"
	case domain.CancelledByPsychologist:
		who = "психологом"
	default:
		who = "администратором"
	}
	line := "Отменена " + who
	if byName != "" {
		line += " (" + byName + ")"
	}
	if reason != "" {
		line += ": " + reason
	}
	return line
}

func toView(a *domain.Appointment) *AppointmentView {
	return &AppointmentView{
		ID:              a.ID,
		PsychologistID:  a.PsychologistID,
		ClientName:      a.ClientName,
		ClientPhone:     a.ClientPhone,
		ClientEmail:     a.ClientEmail,
		AppointmentDate: a.AppointmentDate,
		AppointmentTime: NormalizeTime(a.AppointmentTime),
		Status:          string(a.Status),
		Notes:           a.Notes,
		CancelledBy:     string(a.CancelledBy),
		CancelledByName: a.CancelledByName,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}
}

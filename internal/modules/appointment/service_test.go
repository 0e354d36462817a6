package appointment

import (
	"context"
	"errors"
	"testing"

	"psycenter/internal/domain"
	"psycenter/internal/modules/notify"
	"psycenter/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock repositories

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAppointmentRepository) List(ctx context.Context, opts repository.ListOptions) ([]domain.Appointment, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) OccupiedTimes(ctx context.Context, psychologistID int64, date string, excludeID string) ([]string, error) {
	args := m.Called(ctx, psychologistID, date, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockPsychologistReader struct {
	mock.Mock
}

func (m *MockPsychologistReader) GetByID(ctx context.Context, id int64) (*domain.Psychologist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Psychologist), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) AppointmentCreated(ctx context.Context, a *domain.Appointment, psychologistName string) notify.Outcome {
	args := m.Called(ctx, a, psychologistName)
	return args.Get(0).(notify.Outcome)
}

func (m *MockDispatcher) AppointmentConfirmed(ctx context.Context, a *domain.Appointment, psychologistName string) notify.Outcome {
	args := m.Called(ctx, a, psychologistName)
	return args.Get(0).(notify.Outcome)
}

func (m *MockDispatcher) AppointmentCancelled(ctx context.Context, a *domain.Appointment, psychologistName, reason string) notify.Outcome {
	args := m.Called(ctx, a, psychologistName, reason)
	return args.Get(0).(notify.Outcome)
}

func (m *MockDispatcher) AppointmentRescheduled(ctx context.Context, a *domain.Appointment, psychologistName, oldDate, oldTime string) notify.Outcome {
	args := m.Called(ctx, a, psychologistName, oldDate, oldTime)
	return args.Get(0).(notify.Outcome)
}

func (m *MockDispatcher) EmailTemplate(template string, a *domain.Appointment, psychologistName string) (string, string, error) {
	args := m.Called(template, a, psychologistName)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockDispatcher) SendEmail(a *domain.Appointment, subject, body string) error {
	args := m.Called(a, subject, body)
	return args.Error(0)
}

// 2030-01-01 — вторник, 2030-01-03 — четверг, 2030-01-06 — воскресенье.
const (
	futureTuesday = "2030-01-01"
	futureSunday  = "2030-01-06"
	pastTuesday   = "2020-01-07"
)

func newTestService() (*Service, *MockAppointmentRepository, *MockPsychologistReader, *MockDispatcher) {
	repo := new(MockAppointmentRepository)
	psych := new(MockPsychologistReader)
	disp := new(MockDispatcher)
	return NewService(repo, psych, disp), repo, psych, disp
}

func testPsychologist() *domain.Psychologist {
	return &domain.Psychologist{ID: 1, NameRu: "Айгуль Сапарова", Active: true}
}

func TestAvailability_FullDayMinusOccupied(t *testing.T) {
	svc, repo, _, _ := newTestService()

	// занятые слоты приходят из БД с секундами
	repo.On("OccupiedTimes", mock.Anything, int64(1), futureTuesday, "").
		Return([]string{"10:00:00", "14:30:00"}, nil)

	resp, err := svc.Availability(context.Background(), 1, futureTuesday, "")

	assert.NoError(t, err)
	assert.Equal(t, []string{"10:30", "11:00", "11:30", "12:00", "12:30", "14:00", "15:00", "15:30"}, resp.Slots)
	assert.Equal(t, []string{"10:30", "11:00", "11:30", "12:00", "12:30"}, resp.Day)
	assert.Equal(t, []string{"14:00", "15:00", "15:30"}, resp.Evening)
	repo.AssertExpectations(t)
}

func TestAvailability_NonWorkingDayIsEmpty(t *testing.T) {
	svc, repo, _, _ := newTestService()

	resp, err := svc.Availability(context.Background(), 1, futureSunday, "")

	assert.NoError(t, err)
	assert.Empty(t, resp.Slots)
	// до БД дело не доходит
	repo.AssertNotCalled(t, "OccupiedTimes")
}

func TestAvailability_PastDayIsEmpty(t *testing.T) {
	svc, repo, _, _ := newTestService()

	resp, err := svc.Availability(context.Background(), 1, pastTuesday, "")

	assert.NoError(t, err)
	assert.Empty(t, resp.Slots)
	repo.AssertNotCalled(t, "OccupiedTimes")
}

func TestAvailability_BadDate(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Availability(context.Background(), 1, "04.11.2025", "")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_Success(t *testing.T) {
	svc, repo, psych, disp := newTestService()

	psych.On("GetByID", mock.Anything, int64(1)).Return(testPsychologist(), nil)
	repo.On("OccupiedTimes", mock.Anything, int64(1), futureTuesday, "").Return([]string{}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Appointment")).Return(nil)
	disp.On("AppointmentCreated", mock.Anything, mock.Anything, "Айгуль Сапарова").Return(notify.Outcome{})

	a, err := svc.Create(context.Background(), CreateAppointmentRequest{
		PsychologistID:  1,
		AppointmentDate: futureTuesday,
		AppointmentTime: "10:00",
		ClientName:      "Асел",
		ClientPhone:     "+77001234567",
		ClientEmail:     "asel@example.kz",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentPending, a.Status)
	assert.NotEmpty(t, a.ID)
	disp.AssertExpectations(t)
}

func TestCreate_SlotTaken(t *testing.T) {
	svc, repo, psych, disp := newTestService()

	psych.On("GetByID", mock.Anything, int64(1)).Return(testPsychologist(), nil)
	repo.On("OccupiedTimes", mock.Anything, int64(1), futureTuesday, "").Return([]string{"10:00:00"}, nil)

	_, err := svc.Create(context.Background(), CreateAppointmentRequest{
		PsychologistID:  1,
		AppointmentDate: futureTuesday,
		AppointmentTime: "10:00",
		ClientName:      "Асел",
		ClientPhone:     "+77001234567",
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	repo.AssertNotCalled(t, "Create")
	disp.AssertNotCalled(t, "AppointmentCreated")
}

func TestCreate_PsychologistMissing(t *testing.T) {
	svc, _, psych, _ := newTestService()

	psych.On("GetByID", mock.Anything, int64(42)).Return(nil, repository.ErrNotFound)

	_, err := svc.Create(context.Background(), CreateAppointmentRequest{
		PsychologistID:  42,
		AppointmentDate: futureTuesday,
		AppointmentTime: "10:00",
		ClientName:      "Асел",
		ClientPhone:     "+77001234567",
	})

	assert.ErrorIs(t, err, ErrPsychologistNotFound)
}

func TestCreate_BadEmail(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateAppointmentRequest{
		PsychologistID:  1,
		AppointmentDate: futureTuesday,
		AppointmentTime: "10:00",
		ClientName:      "Асел",
		ClientPhone:     "+77001234567",
		ClientEmail:     "not-an-email",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

// Бэкенд сознательно не проверяет день недели при создании: правило
// вторник/четверг живёт в форме записи. Тест фиксирует текущее
// (возможно непреднамеренное) поведение, а не одобряет его.
func TestCreate_SundayAcceptedByBackend(t *testing.T) {
	svc, repo, psych, disp := newTestService()

	psych.On("GetByID", mock.Anything, int64(1)).Return(testPsychologist(), nil)
	repo.On("OccupiedTimes", mock.Anything, int64(1), futureSunday, "").Return([]string{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	disp.On("AppointmentCreated", mock.Anything, mock.Anything, mock.Anything).Return(notify.Outcome{})

	a, err := svc.Create(context.Background(), CreateAppointmentRequest{
		PsychologistID:  1,
		AppointmentDate: futureSunday,
		AppointmentTime: "10:00",
		ClientName:      "Асел",
		ClientPhone:     "+77001234567",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentPending, a.Status)
}

func TestConfirm_Pending(t *testing.T) {
	svc, repo, psych, disp := newTestService()

	a := &domain.Appointment{ID: "id-1", PsychologistID: 1, Status: domain.AppointmentPending, ClientName: "Асел"}
	repo.On("GetByID", mock.Anything, "id-1").Return(a, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	psych.On("GetByID", mock.Anything, int64(1)).Return(testPsychologist(), nil)
	disp.On("AppointmentConfirmed", mock.Anything, mock.Anything, "Айгуль Сапарова").Return(notify.Outcome{})

	got, err := svc.Confirm(context.Background(), "id-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentConfirmed, got.Status)
	disp.AssertExpectations(t)
}

func TestConfirm_CancelledStaysCancelled(t *testing.T) {
	svc, repo, _, disp := newTestService()

	a := &domain.Appointment{ID: "id-1", Status: domain.AppointmentCancelled}
	repo.On("GetByID", mock.Anything, "id-1").Return(a, nil)

	_, err := svc.Confirm(context.Background(), "id-1")

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	repo.AssertNotCalled(t, "Update")
	disp.AssertNotCalled(t, "AppointmentConfirmed")
}

// Повторное подтверждение идемпотентно по статусу, но уведомления
// отправляются заново — дедупликации нет.
func TestConfirm_AlreadyConfirmedResends(t *testing.T) {
	svc, repo, psych, disp := newTestService()

	a := &domain.Appointment{ID: "id-1", PsychologistID: 1, Status: domain.AppointmentConfirmed}
	repo.On("GetByID", mock.Anything, "id-1").Return(a, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	psych.On("GetByID", mock.Anything, int64(1)).Return(testPsychologist(), nil)
	disp.On("AppointmentConfirmed", mock.Anything, mock.Anything, mock.Anything).Return(notify.Outcome{})

	got, err := svc.Confirm(context.Background(), "id-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentConfirmed, got.Status)
	disp.AssertNumberOfCalls(t, "AppointmentConfirmed", 1)
}

func TestConfirm_NotFound(t *testing.T) {
	svc, repo, _, _ := newTestService()

	repo.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.Confirm(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancel_AppendsAnnotation(t *testing.T) {
	svc, repo, psych, disp := newTestService()

	a := &domain.Appointment{
		ID:             "id-1",
		PsychologistID: 1,
		Status:         domain.AppointmentConfirmed,
		Notes:          "Прошу позвонить заранее",
	}
	repo.On("GetByID", mock.Anything, "id-1").Return(a, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	psych.On("GetByID", mock.Anything, int64(1)).Return(testPsychologist(), nil)
	disp.On("AppointmentCancelled", mock.Anything, mock.Anything, mock.Anything, "болею").Return(notify.Outcome{})

	got, err := svc.Cancel(context.Background(), "id-1", CancelAppointmentRequest{
		Reason:      "болею",
		CancelledBy: "client",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentCancelled, got.Status)
	assert.Equal(t, domain.CancelledByClient, got.CancelledBy)
	// исходный комментарий клиента сохранён
	assert.Contains(t, got.Notes, "Прошу позвонить заранее")
	assert.Contains(t, got.Notes, "Отменена клиентом: болею")
}

func TestCancel_ByAdminWithName(t *testing.T) {
	svc, repo, psych, disp := newTestService()

	a := &domain.Appointment{ID: "id-1", PsychologistID: 1, Status: domain.AppointmentPending}
	repo.On("GetByID", mock.Anything, "id-1").Return(a, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	psych.On("GetByID", mock.Anything, int64(1)).Return(testPsychologist(), nil)
	disp.On("AppointmentCancelled", mock.Anything, mock.Anything, mock.Anything, "").Return(notify.Outcome{})

	got, err := svc.Cancel(context.Background(), "id-1", CancelAppointmentRequest{
		CancelledBy:     "admin",
		CancelledByName: "Гульнара",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Гульнара", got.CancelledByName)
	assert.Contains(t, got.Notes, "Отменена администратором (Гульнара)")
}

func TestCancel_NotFound(t *testing.T) {
	svc, repo, _, _ := newTestService()

	repo.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.Cancel(context.Background(), "missing", CancelAppointmentRequest{CancelledBy: "client"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReschedule_ConfirmedResetsToPending(t *testing.T) {
	svc, repo, psych, disp := newTestService()

	a := &domain.Appointment{
		ID:              "id-1",
		PsychologistID:  1,
		Status:          domain.AppointmentConfirmed,
		AppointmentDate: futureTuesday,
		AppointmentTime: "10:00",
		ClientName:      "Асел",
	}
	repo.On("GetByID", mock.Anything, "id-1").Return(a, nil)
	// собственный слот записи исключён из занятых
	repo.On("OccupiedTimes", mock.Anything, int64(1), "2030-01-03", "id-1").Return([]string{}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	psych.On("GetByID", mock.Anything, int64(1)).Return(testPsychologist(), nil)
	disp.On("AppointmentRescheduled", mock.Anything, mock.Anything, mock.Anything, futureTuesday, "10:00").
		Return(notify.Outcome{})

	got, err := svc.Reschedule(context.Background(), "id-1", RescheduleAppointmentRequest{
		AppointmentDate: "2030-01-03",
		AppointmentTime: "14:00",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentPending, got.Status)
	assert.Equal(t, "2030-01-03", got.AppointmentDate)
	assert.Equal(t, "14:00", got.AppointmentTime)
	disp.AssertExpectations(t)
}

func TestReschedule_TargetSlotTaken(t *testing.T) {
	svc, repo, _, _ := newTestService()

	a := &domain.Appointment{
		ID:              "id-1",
		PsychologistID:  1,
		Status:          domain.AppointmentPending,
		AppointmentDate: futureTuesday,
		AppointmentTime: "10:00",
	}
	repo.On("GetByID", mock.Anything, "id-1").Return(a, nil)
	repo.On("OccupiedTimes", mock.Anything, int64(1), futureTuesday, "id-1").Return([]string{"14:00"}, nil)

	_, err := svc.Reschedule(context.Background(), "id-1", RescheduleAppointmentRequest{
		AppointmentDate: futureTuesday,
		AppointmentTime: "14:00",
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	repo.AssertNotCalled(t, "Update")
}

func TestReschedule_CancelledRejected(t *testing.T) {
	svc, repo, _, _ := newTestService()

	a := &domain.Appointment{ID: "id-1", Status: domain.AppointmentCancelled}
	repo.On("GetByID", mock.Anything, "id-1").Return(a, nil)

	_, err := svc.Reschedule(context.Background(), "id-1", RescheduleAppointmentRequest{
		AppointmentDate: futureTuesday,
		AppointmentTime: "14:00",
	})

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestSendTemplatedEmail_UnknownTemplate(t *testing.T) {
	svc, repo, psych, disp := newTestService()

	a := &domain.Appointment{ID: "id-1", PsychologistID: 1, ClientEmail: "asel@example.kz"}
	repo.On("GetByID", mock.Anything, "id-1").Return(a, nil)
	psych.On("GetByID", mock.Anything, int64(1)).Return(testPsychologist(), nil)
	disp.On("EmailTemplate", "nope", mock.Anything, mock.Anything).Return("", "", errors.New("unknown email template: nope"))

	err := svc.SendTemplatedEmail(context.Background(), "id-1", "nope")

	assert.ErrorIs(t, err, ErrValidation)
	disp.AssertNotCalled(t, "SendEmail")
}

// Сбой уведомлений не валит основную операцию: запись уже создана.
func TestCreate_NotificationFailureIgnored(t *testing.T) {
	svc, repo, psych, disp := newTestService()

	psych.On("GetByID", mock.Anything, int64(1)).Return(testPsychologist(), nil)
	repo.On("OccupiedTimes", mock.Anything, int64(1), futureTuesday, "").Return([]string{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	disp.On("AppointmentCreated", mock.Anything, mock.Anything, mock.Anything).
		Return(notify.Outcome{TelegramErr: errors.New("telegram down"), EmailErr: errors.New("smtp down")})

	a, err := svc.Create(context.Background(), CreateAppointmentRequest{
		PsychologistID:  1,
		AppointmentDate: futureTuesday,
		AppointmentTime: "10:00",
		ClientName:      "Асел",
		ClientPhone:     "+77001234567",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentPending, a.Status)
}

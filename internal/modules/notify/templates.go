package notify

import (
	"fmt"
	"strings"
	"time"

	"psycenter/internal/domain"
)

// Тексты уведомлений. Рабочий чат и письма клиентам — на русском.

func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02.01.2006")
}

func actorLabel(by domain.CancelActor) string {
	switch by {
	case domain.CancelledByClient:
		return "клиентом"
	case domain.CancelledByPsychologist:
		return "психологом"
	default:
		return "администратором"
	}
}

func opsCreatedText(a *domain.Appointment, psychologistName string) string {
	var b strings.Builder
	b.WriteString("🆕 Новая запись на консультацию\n")
	fmt.Fprintf(&b, "Дата: %s\n", formatDate(a.AppointmentDate))
	fmt.Fprintf(&b, "Время: %s\n", a.AppointmentTime)
	fmt.Fprintf(&b, "Психолог: %s\n", psychologistName)
	fmt.Fprintf(&b, "Клиент: %s, %s", a.ClientName, a.ClientPhone)
	if a.ClientEmail != "" {
		fmt.Fprintf(&b, ", %s", a.ClientEmail)
	}
	if a.Notes != "" {
		fmt.Fprintf(&b, "\nКомментарий: %s", a.Notes)
	}
	return b.String()
}

func opsConfirmedText(a *domain.Appointment, psychologistName string) string {
	return fmt.Sprintf(
		"✅ Запись подтверждена\nДата: %s\nВремя: %s\nПсихолог: %s\nКлиент: %s",
		formatDate(a.AppointmentDate), a.AppointmentTime, psychologistName, a.ClientName,
	)
}

func opsCancelledText(a *domain.Appointment, psychologistName, reason string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "❌ Запись отменена (%s", actorLabel(a.CancelledBy))
	if a.CancelledByName != "" {
		fmt.Fprintf(&b, ": %s", a.CancelledByName)
	}
	b.WriteString(")\n")
	fmt.Fprintf(&b, "Дата: %s\n", formatDate(a.AppointmentDate))
	fmt.Fprintf(&b, "Время: %s\n", a.AppointmentTime)
	fmt.Fprintf(&b, "Психолог: %s\n", psychologistName)
	fmt.Fprintf(&b, "Клиент: %s", a.ClientName)
	if reason != "" {
		fmt.Fprintf(&b, "\nПричина: %s", reason)
	}
	return b.String()
}

func opsRescheduledText(a *domain.Appointment, psychologistName, oldDate, oldTime string) string {
	return fmt.Sprintf(
		"🔁 Перенос записи\nБыло: %s %s\nСтало: %s %s\nПсихолог: %s\nКлиент: %s\nОжидает повторного подтверждения",
		formatDate(oldDate), oldTime,
		formatDate(a.AppointmentDate), a.AppointmentTime,
		psychologistName, a.ClientName,
	)
}

func (d *Dispatcher) statusLink(id string) string {
	return d.frontendURL + "/appointment/" + id
}

func (d *Dispatcher) emailCreated(a *domain.Appointment, psychologistName string) (subject, body string) {
	subject = "Ваша заявка на консультацию принята"
	body = fmt.Sprintf(
		"Здравствуйте, %s!\n\n"+
			"Мы получили вашу заявку на консультацию.\n\n"+
			"Психолог: %s\nДата: %s\nВремя: %s\n\n"+
			"Запись ожидает подтверждения. Мы сообщим вам, когда она будет подтверждена.\n\n"+
			"Статус записи можно посмотреть по ссылке:\n%s",
		a.ClientName, psychologistName,
		formatDate(a.AppointmentDate), a.AppointmentTime,
		d.statusLink(a.ID),
	)
	return subject, body
}

func (d *Dispatcher) emailConfirmed(a *domain.Appointment, psychologistName string) (subject, body string) {
	subject = "Ваша запись подтверждена"
	body = fmt.Sprintf(
		"Здравствуйте, %s!\n\n"+
			"Ваша запись на консультацию подтверждена.\n\n"+
			"Психолог: %s\nДата: %s\nВремя: %s\n\n"+
			"Если планы изменятся, вы можете отменить или перенести запись по ссылке:\n%s",
		a.ClientName, psychologistName,
		formatDate(a.AppointmentDate), a.AppointmentTime,
		d.statusLink(a.ID),
	)
	return subject, body
}

func (d *Dispatcher) emailCancelled(a *domain.Appointment, psychologistName, reason string) (subject, body string) {
	subject = "Ваша запись отменена"

	var lead string
	if a.CancelledBy == domain.CancelledByClient {
		lead = "Вы отменили запись на консультацию."
	} else {
		lead = "К сожалению, ваша запись на консультацию была отменена."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Здравствуйте, %s!\n\n%s\n\n", a.ClientName, lead)
	fmt.Fprintf(&b, "Психолог: %s\nДата: %s\nВремя: %s\n",
		psychologistName, formatDate(a.AppointmentDate), a.AppointmentTime)
	if reason != "" {
		fmt.Fprintf(&b, "Причина: %s\n", reason)
	}
	fmt.Fprintf(&b, "\nВы можете записаться на другое время на нашем сайте:\n%s", d.frontendURL)
	return subject, b.String()
}

func (d *Dispatcher) emailRescheduled(a *domain.Appointment, psychologistName, oldDate, oldTime string) (subject, body string) {
	subject = "Ваша запись перенесена"
	body = fmt.Sprintf(
		"Здравствуйте, %s!\n\n"+
			"Время вашей консультации изменено.\n\n"+
			"Было: %s %s\nСтало: %s %s\nПсихолог: %s\n\n"+
			"Запись снова ожидает подтверждения. Мы сообщим вам, когда она будет подтверждена.\n\n"+
			"Статус записи:\n%s",
		a.ClientName,
		formatDate(oldDate), oldTime,
		formatDate(a.AppointmentDate), a.AppointmentTime,
		psychologistName,
		d.statusLink(a.ID),
	)
	return subject, body
}

package services

import (
	"fmt"
	"strings"

	"github.com/mkrylova/entry-form/models"
	"github.com/mkrylova/entry-form/utils"
)

const (
	subjectPrefix  = "Новая заявка: "
	subjectNoClub  = "Новая заявка (клуб не указан)"
	blankFieldDash = "—"

	attachmentPrefix = "Заявка"
	attachmentExt    = ".docx"
)

// BuildNotification собирает письмо для дежурного ящика: тема с названием
// клуба, краткая сводка в теле и готовый документ во вложении.
func BuildNotification(to string, sub models.Submission, doc []byte) OutgoingMail {
	subject := subjectNoClub
	if sub.Club != "" {
		subject = subjectPrefix + sub.Club
	}
	return OutgoingMail{
		To:         to,
		Subject:    subject,
		Body:       notificationBody(sub),
		Filename:   AttachmentFileName(sub.Club),
		Attachment: doc,
	}
}

// AttachmentFileName строит имя вложения из названия клуба. Пустое или
// полностью небезопасное название даёт просто «Заявка.docx».
func AttachmentFileName(club string) string {
	safe := utils.SanitizeFileName(club)
	if safe == "" {
		return attachmentPrefix + attachmentExt
	}
	return attachmentPrefix + "_" + safe + attachmentExt
}

// notificationBody — сводка заявки фиксированного порядка; пустые поля
// заменяются прочерком.
func notificationBody(sub models.Submission) string {
	lines := []string{
		"Клуб: " + orDash(sub.Club),
		"Город: " + orDash(sub.City),
		"Тренер: " + orDash(sub.Coach),
		"Контакты: " + orDash(sub.Contacts),
		"Судья: " + orDash(utils.JoinNonEmpty(", ", sub.Judge, sub.JudgeCategory)),
		fmt.Sprintf("Участников: %d", len(sub.Participants)),
	}
	return strings.Join(lines, "\n") + "\n"
}

func orDash(s string) string {
	if s == "" {
		return blankFieldDash
	}
	return s
}

package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/mkrylova/entry-form/models"
)

// Формат даты, который видит пользователь в форме и в документе.
const FormDateLayout = "02.01.2006"

// NormalizeSubmission превращает сырое тело запроса в каноничную заявку.
// Никогда не падает: отсутствующие и неверно типизированные поля
// деградируют до пустой строки, participants — до пустого списка.
// Дата по умолчанию — сегодняшняя в формате ДД.ММ.ГГГГ.
func NormalizeSubmission(raw map[string]interface{}, now time.Time) models.Submission {
	sub := models.Submission{
		Date:          asString(raw["date"]),
		City:          asString(raw["city"]),
		Club:          asString(raw["club"]),
		Contacts:      asString(raw["contacts"]),
		Coach:         asString(raw["coach"]),
		Judge:         asString(raw["judge"]),
		JudgeCategory: asString(raw["judgeCategory"]),
		Participants:  []models.Participant{},
	}
	if sub.Date == "" {
		sub.Date = now.Format(FormDateLayout)
	}

	list, ok := raw["participants"].([]interface{})
	if !ok {
		return sub
	}
	for i, item := range list {
		p := models.Participant{Idx: i + 1}
		if fields, ok := item.(map[string]interface{}); ok {
			p.Name = asString(fields["name"])
			p.BirthYear = asString(fields["birthYear"])
			p.HasRank = asString(fields["hasRank"])
			p.PerformingRank = asString(fields["performingRank"])
			p.MedicalVisa = asString(fields["medicalVisa"])
		}
		sub.Participants = append(sub.Participants, p)
	}
	return sub
}

// asString приводит значение из JSON к обрезанной строке. Числа
// (encoding/json отдаёт их как float64) форматируются без хвостового ".0",
// всё остальное нестроковое считается пустым.
func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

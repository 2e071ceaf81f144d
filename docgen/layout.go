// Package docgen собирает печатную форму заявки. Содержимое документа
// описывается декларативным деревом (layout.go) и отдельно отрисовывается
// в DOCX (render.go), поэтому состав документа проверяется тестами без
// библиотеки рендеринга.
package docgen

import (
	"strconv"

	"github.com/mkrylova/entry-form/models"
	"github.com/mkrylova/entry-form/utils"
)

// Шапка документа фиксированная, меняется только строка с датой.
const (
	titleText    = "ЗАЯВКА"
	subtitleText = "на участие в соревнованиях по художественной гимнастике"
	eventPrefix  = "Открытый турнир "
	eventName    = "«Звёздный дождь»"
	locationText = "г. Мытищи"

	bodyPt  = 12
	titlePt = 14

	// Заявка без участников печатается с пустыми строками под ручное
	// заполнение — пустая таблица никогда не выводится.
	blankParticipantRows = 8

	headerShading = "D9D9D9"
)

// Ширины колонок в твипах; сумма даёт полезную ширину страницы A4.
var (
	infoColWidths        = []int64{4500, 4500}
	participantColWidths = []int64{600, 2700, 1300, 1500, 1700, 1200}
)

var participantHeader = []string{
	"№", "Фамилия, имя", "Год рождения", "Имеет разряд", "Выступает по разряду", "Виза врача",
}

type Run struct {
	Text   string
	SizePt int
	Bold   bool
	Italic bool
	Shaded bool
}

type Paragraph struct {
	Align string // "center" или "" (по левому краю)
	Runs  []Run
}

type Cell struct {
	Text   string
	Align  string
	Bold   bool
	Shaded bool
}

type Table struct {
	ColWidths []int64
	Rows      [][]Cell
}

// Block — один элемент документа сверху вниз: либо абзац, либо таблица.
type Block struct {
	Para  *Paragraph
	Table *Table
}

type Document struct {
	Blocks []Block
}

// Build строит дерево документа по заявке. Чистая функция: одинаковая
// заявка даёт одинаковое дерево.
func Build(sub models.Submission) Document {
	blocks := []Block{
		centered(Run{Text: titleText, SizePt: titlePt, Bold: true}),
		centered(Run{Text: subtitleText, SizePt: titlePt}),
		centered(
			Run{Text: eventPrefix, SizePt: titlePt},
			Run{Text: eventName, SizePt: titlePt, Italic: true},
		),
		centered(Run{Text: locationText + ", " + sub.Date, SizePt: bodyPt}),
		{Para: &Paragraph{}}, // отступ перед таблицей
		{Table: infoTable(sub)},
		{Para: &Paragraph{}},
		{Table: participantTable(sub.Participants)},
	}
	return Document{Blocks: blocks}
}

func centered(runs ...Run) Block {
	return Block{Para: &Paragraph{Align: "center", Runs: runs}}
}

func infoTable(sub models.Submission) *Table {
	attrs := [][2]string{
		{"Клуб", sub.Club},
		{"Город", sub.City},
		{"Контакты", sub.Contacts},
		{"Тренер", sub.Coach},
		{"Судья", utils.JoinNonEmpty(", ", sub.Judge, sub.JudgeCategory)},
	}

	rows := make([][]Cell, 0, len(attrs))
	for _, a := range attrs {
		rows = append(rows, []Cell{{Text: a[0]}, {Text: a[1]}})
	}
	return &Table{ColWidths: infoColWidths, Rows: rows}
}

func participantTable(participants []models.Participant) *Table {
	header := make([]Cell, 0, len(participantHeader))
	for _, h := range participantHeader {
		header = append(header, Cell{Text: h, Align: "center", Bold: true, Shaded: true})
	}
	rows := [][]Cell{header}

	if len(participants) == 0 {
		for i := 1; i <= blankParticipantRows; i++ {
			rows = append(rows, []Cell{
				{Text: strconv.Itoa(i), Align: "center"},
				{}, {}, {}, {}, {},
			})
		}
		return &Table{ColWidths: participantColWidths, Rows: rows}
	}

	for _, p := range participants {
		rows = append(rows, []Cell{
			{Text: strconv.Itoa(p.Idx), Align: "center"},
			{Text: p.Name},
			{Text: p.BirthYear, Align: "center"},
			{Text: p.HasRank, Align: "center"},
			{Text: p.PerformingRank, Align: "center"},
			{Text: p.MedicalVisa, Align: "center"},
		})
	}
	return &Table{ColWidths: participantColWidths, Rows: rows}
}

package docgen

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkrylova/entry-form/models"
)

func tables(doc Document) []*Table {
	var out []*Table
	for _, b := range doc.Blocks {
		if b.Table != nil {
			out = append(out, b.Table)
		}
	}
	return out
}

func TestBuildHeaderBlock(t *testing.T) {
	doc := Build(models.Submission{Date: "01.09.2025"})

	require.NotNil(t, doc.Blocks[0].Para)
	title := doc.Blocks[0].Para
	require.Equal(t, "center", title.Align)
	require.Equal(t, "ЗАЯВКА", title.Runs[0].Text)
	require.True(t, title.Runs[0].Bold)

	event := doc.Blocks[2].Para
	require.Len(t, event.Runs, 2)
	require.False(t, event.Runs[0].Italic)
	require.True(t, event.Runs[1].Italic, "название турнира выделено курсивом")

	dateLine := doc.Blocks[3].Para
	require.Contains(t, dateLine.Runs[0].Text, "01.09.2025", "дата из заявки попадает в шапку как есть")
}

func TestBuildInfoTable(t *testing.T) {
	doc := Build(models.Submission{
		Club:          "Звезда",
		City:          "Мытищи",
		Contacts:      "+7 900 000-00-00",
		Coach:         "Иванова И.И.",
		Judge:         "Смирнова О.П.",
		JudgeCategory: "ВК",
	})

	info := tables(doc)[0]
	require.Equal(t, []int64{4500, 4500}, info.ColWidths)
	require.Len(t, info.Rows, 5)

	labels := make([]string, 0, len(info.Rows))
	for _, row := range info.Rows {
		require.Len(t, row, 2)
		labels = append(labels, row[0].Text)
	}
	require.Equal(t, []string{"Клуб", "Город", "Контакты", "Тренер", "Судья"}, labels)
	require.Equal(t, "Звезда", info.Rows[0][1].Text)
	require.Equal(t, "Смирнова О.П., ВК", info.Rows[4][1].Text)
}

func TestBuildJudgeLineDropsEmptyParts(t *testing.T) {
	info := tables(Build(models.Submission{Judge: "Смирнова О.П."}))[0]
	require.Equal(t, "Смирнова О.П.", info.Rows[4][1].Text)

	info = tables(Build(models.Submission{JudgeCategory: "ВК"}))[0]
	require.Equal(t, "ВК", info.Rows[4][1].Text)

	info = tables(Build(models.Submission{}))[0]
	require.Equal(t, "", info.Rows[4][1].Text)
}

func TestBuildParticipantTable(t *testing.T) {
	doc := Build(models.Submission{
		Participants: []models.Participant{
			{Idx: 1, Name: "Петрова А.", BirthYear: "2012", MedicalVisa: "есть"},
			{Idx: 2, Name: "Сидорова В."},
		},
	})

	tbl := tables(doc)[1]
	require.Len(t, tbl.ColWidths, 6)

	header := tbl.Rows[0]
	require.Equal(t, "№", header[0].Text)
	require.Equal(t, "Виза врача", header[5].Text)
	for _, cell := range header {
		require.True(t, cell.Bold)
		require.True(t, cell.Shaded)
		require.Equal(t, "center", cell.Align)
	}

	require.Len(t, tbl.Rows, 3, "по строке на участника")
	require.Equal(t, "1", tbl.Rows[1][0].Text)
	require.Equal(t, "Петрова А.", tbl.Rows[1][1].Text)
	require.Equal(t, "есть", tbl.Rows[1][5].Text)
	require.Equal(t, "2", tbl.Rows[2][0].Text)
	require.Equal(t, "", tbl.Rows[2][2].Text, "пустые поля остаются пустыми строками")
}

func TestBuildEmptyRosterGivesEightBlankRows(t *testing.T) {
	tbl := tables(Build(models.Submission{}))[1]

	require.Len(t, tbl.Rows, 1+8)
	for i, row := range tbl.Rows[1:] {
		require.Equal(t, strconv.Itoa(i+1), row[0].Text, "пустые строки пронумерованы 1..8")
		for _, cell := range row[1:] {
			require.Empty(t, cell.Text)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	sub := models.Submission{
		Date: "01.09.2025",
		Club: "Звезда",
		Participants: []models.Participant{
			{Idx: 1, Name: "Петрова А.", BirthYear: "2012"},
		},
	}
	require.Equal(t, Build(sub), Build(sub))
}

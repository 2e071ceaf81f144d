package docgen

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fumiama/go-docx"

	"github.com/mkrylova/entry-form/models"
)

const serifFont = "Times New Roman"

// DocxRenderer отрисовывает дерево документа в байты DOCX.
type DocxRenderer struct{}

func NewDocxRenderer() *DocxRenderer { return &DocxRenderer{} }

// Render строит печатную форму заявки: страница A4, единая гарнитура с
// засечками, шапка по центру, таблица реквизитов и таблица участников.
func (r *DocxRenderer) Render(sub models.Submission) ([]byte, error) {
	doc := Build(sub)

	w := docx.New().WithDefaultTheme().WithA4Page()
	for _, blk := range doc.Blocks {
		switch {
		case blk.Para != nil:
			renderParagraph(w.AddParagraph(), blk.Para)
		case blk.Table != nil:
			if err := renderTable(w, blk.Table); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return buf.Bytes(), nil
}

func renderParagraph(p *docx.Paragraph, para *Paragraph) {
	if para.Align != "" {
		p.Justification(para.Align)
	}
	for _, run := range para.Runs {
		styleRun(p, run)
	}
}

func styleRun(p *docx.Paragraph, run Run) {
	r := p.AddText(run.Text).
		Font(serifFont, serifFont, serifFont, "").
		Size(halfPoints(run.SizePt))
	if run.Bold {
		r.Bold()
	}
	if run.Italic {
		r.Italic()
	}
	if run.Shaded {
		r.Shade("clear", "auto", headerShading)
	}
}

func renderTable(w *docx.Docx, table *Table) error {
	rowHeights := make([]int64, len(table.Rows))
	tbl := w.AddTableTwips(rowHeights, table.ColWidths, 0, nil)
	if len(tbl.TableRows) != len(table.Rows) {
		return fmt.Errorf("unexpected table shape: %d rows, want %d", len(tbl.TableRows), len(table.Rows))
	}

	for i, row := range table.Rows {
		cells := tbl.TableRows[i].TableCells
		if len(cells) != len(row) {
			return fmt.Errorf("unexpected row shape: %d cells, want %d", len(cells), len(row))
		}
		for j, cell := range row {
			p := cells[j].AddParagraph()
			if cell.Align != "" {
				p.Justification(cell.Align)
			}
			styleRun(p, Run{
				Text:   cell.Text,
				SizePt: bodyPt,
				Bold:   cell.Bold,
				Shaded: cell.Shaded,
			})
		}
	}
	return nil
}

func halfPoints(pt int) string {
	return strconv.Itoa(pt * 2)
}

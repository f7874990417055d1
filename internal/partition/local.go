package partition

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"docqa-rag/internal/models"
)

// LocalPartitioner extracts elements without an external partition server.
// It has no layout analysis: PDF pages and DOCX paragraphs become text
// elements, spreadsheet sheets become table elements, and markdown-style
// "#" headings in plain-text files become titles. Inline images are not
// extracted.
type LocalPartitioner struct{}

func NewLocalPartitioner() *LocalPartitioner {
	return &LocalPartitioner{}
}

func (p *LocalPartitioner) Partition(ctx context.Context, filePath string) ([]models.Element, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		return p.partitionPDF(filePath)
	case ".docx":
		return p.partitionDOCX(filePath)
	case ".xlsx":
		return p.partitionXLSX(filePath)
	case ".ods":
		return p.partitionODS(filePath)
	case ".txt", ".md":
		return p.partitionText(filePath)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}
}

func (p *LocalPartitioner) partitionPDF(filePath string) ([]models.Element, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, err
	}

	var elements []models.Element
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		elements = append(elements, models.Element{
			Kind: models.KindText,
			Text: strings.TrimSpace(pageText),
			Page: i,
		})
	}
	return elements, nil
}

func (p *LocalPartitioner) partitionDOCX(filePath string) ([]models.Element, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	content := r.Editable().GetContent()
	var elements []models.Element
	for _, para := range strings.Split(content, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		elements = append(elements, models.Element{
			Kind: models.KindText,
			Text: para,
			Page: 1,
		})
	}
	return elements, nil
}

func (p *LocalPartitioner) partitionXLSX(filePath string) ([]models.Element, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, err
	}

	var elements []models.Element
	for sheetNum, sheet := range f.Sheets {
		var rows [][]string
		for _, row := range sheet.Rows {
			var cells []string
			for _, cell := range row.Cells {
				cells = append(cells, cell.String())
			}
			rows = append(rows, cells)
		}
		el, ok, err := sheetElement(sheet.Name, rows, sheetNum+1)
		if err != nil {
			return nil, err
		}
		if ok {
			elements = append(elements, el)
		}
	}
	return elements, nil
}

func (p *LocalPartitioner) partitionODS(filePath string) ([]models.Element, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var elements []models.Element
	for sheetNum, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		el, ok, err := sheetElement(sheetName, rows, sheetNum+1)
		if err != nil {
			return nil, err
		}
		if ok {
			elements = append(elements, el)
		}
	}
	return elements, nil
}

func (p *LocalPartitioner) partitionText(filePath string) ([]models.Element, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var elements []models.Element
	var paragraph strings.Builder
	flush := func() {
		if paragraph.Len() == 0 {
			return
		}
		elements = append(elements, models.Element{
			Kind: models.KindText,
			Text: strings.TrimSpace(paragraph.String()),
			Page: 1,
		})
		paragraph.Reset()
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "#"):
			flush()
			elements = append(elements, models.Element{
				Kind: models.KindTitle,
				Text: strings.TrimSpace(strings.TrimLeft(line, "#")),
				Page: 1,
			})
		default:
			if paragraph.Len() > 0 {
				paragraph.WriteString("\n")
			}
			paragraph.WriteString(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return elements, nil
}

// sheetElement turns one spreadsheet sheet into a table element with both a
// plain-text and an HTML rendering. Empty sheets are skipped.
func sheetElement(name string, rows [][]string, page int) (models.Element, bool, error) {
	var text strings.Builder
	text.WriteString(fmt.Sprintf("Sheet: %s\n", name))
	empty := true
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
			}
			text.WriteString(cell + "\t")
		}
		text.WriteString("\n")
	}
	if empty {
		return models.Element{}, false, nil
	}
	html, err := tableHTML(rows)
	if err != nil {
		return models.Element{}, false, err
	}
	return models.Element{
		Kind:      models.KindTable,
		Text:      strings.TrimSpace(text.String()),
		TableHTML: html,
		Page:      page,
	}, true, nil
}

package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"portalsst.com/portalsst/utils"
)

// ExportDateLayout is the Brazilian display format used in downloads.
const ExportDateLayout = "02/01/2006"

// ExportFilename follows the export_<table>_<YYYYMMDD>.csv convention.
func ExportFilename(table string, today time.Time) string {
	return fmt.Sprintf("export_%s_%s.csv", table, today.Format("20060102"))
}

// Excel only detects UTF-8 in CSV downloads when the file opens with a BOM.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func newExportWriter(w io.Writer) (*csv.Writer, error) {
	if _, err := w.Write(utf8BOM); err != nil {
		return nil, err
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	cw.UseCRLF = true
	return cw, nil
}

// WriteCSV serializes any table: header row, one record per row,
// semicolon-delimited, dates rendered day-first.
func WriteCSV(w io.Writer, t *Table) error {
	cw, err := newExportWriter(w)
	if err != nil {
		return err
	}
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, r := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			cell := r.Get(col)
			if cell.Date != nil {
				rec[i] = cell.Date.Format(ExportDateLayout)
			} else {
				rec[i] = cell.Text
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type nr35ExportRecord struct {
	Nome       string `csv:"NOME"`
	Unidade    string `csv:"UNIDADE"`
	Setor      string `csv:"SETOR"`
	Realizacao string `csv:"DATA DE REALIZAÇÃO"`
	Vencimento string `csv:"VENCIMENTO DO TREINAMENTO"`
	ASO        string `csv:"REALIZAÇÃO ASO ALTURA"`
	ASOVenc    string `csv:"VENCIMENTO DO ASO"`
	Resultado  string `csv:"RESULTADO ASO"`
	Observacao string `csv:"OBSERVAÇÃO"`
}

// WriteNR35CSV exports the primary tab in its fixed layout, independent of
// whatever extra columns the sheet accumulated.
func WriteNR35CSV(w io.Writer, t *Table) error {
	cw, err := newExportWriter(w)
	if err != nil {
		return err
	}
	records := utils.Map(t.Rows, func(r Row) nr35ExportRecord {
		return nr35ExportRecord{
			Nome:       r.Text(ColNome),
			Unidade:    r.Text(ColUnidade),
			Setor:      r.Text(ColSetor),
			Realizacao: utils.FormatDate(r.Date(ColRealizacao), ExportDateLayout),
			Vencimento: utils.FormatDate(r.Date(ColVencimento), ExportDateLayout),
			ASO:        utils.FormatDate(r.Date(ColASO), ExportDateLayout),
			ASOVenc:    utils.FormatDate(r.Date(ColASOVenc), ExportDateLayout),
			Resultado:  r.Text(ColResultado),
			Observacao: r.Text(ColObservacao),
		}
	})
	return gocsv.MarshalCSV(records, cw)
}

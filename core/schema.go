package core

// Column names as they appear in the spreadsheets. The sheets are
// maintained by the SESMT team in Portuguese; the header text is the
// contract, so it is kept verbatim.
const (
	ColNome       = "NOME"
	ColUnidade    = "UNIDADE"
	ColSetor      = "SETOR"
	ColRealizacao = "DATA DE REALIZAÇÃO"
	ColVencimento = "VENCIMENTO DO TREINAMENTO"
	ColASO        = "REALIZAÇÃO ASO ALTURA"
	ColASOVenc    = "VENCIMENTO DO ASO"
	ColResultado  = "RESULTADO ASO"
	ColObservacao = "OBSERVAÇÃO"

	// Display-only columns, derived on every render and never persisted.
	ColStatusTreinamento = "Status Treinamento"
	ColStatusASO         = "Status ASO"
)

// TableNR35 is the primary tab; every other tab follows the generic layout.
const TableNR35 = "NR_35"

// DeadlineRule derives Target from Source by adding OffsetYears, and maps
// the result to a display status column.
type DeadlineRule struct {
	Source      string
	Target      string
	StatusCol   string
	OffsetYears int
}

// Schema describes the date handling for one table: which columns parse as
// dates, how deadlines derive from them and which columns are display-only.
type Schema struct {
	DateColumns []string
	Deadlines   []DeadlineRule
	StatusCols  []string
}

var NR35Schema = Schema{
	DateColumns: []string{ColRealizacao, ColVencimento, ColASO, ColASOVenc},
	Deadlines: []DeadlineRule{
		{Source: ColRealizacao, Target: ColVencimento, StatusCol: ColStatusTreinamento, OffsetYears: 2},
		{Source: ColASO, Target: ColASOVenc, StatusCol: ColStatusASO, OffsetYears: 1},
	},
	StatusCols: []string{ColStatusTreinamento, ColStatusASO},
}

var GenericNRSchema = Schema{
	DateColumns: []string{ColRealizacao, ColVencimento},
	Deadlines: []DeadlineRule{
		{Source: ColRealizacao, Target: ColVencimento, StatusCol: ColStatusTreinamento, OffsetYears: 2},
	},
	StatusCols: []string{ColStatusTreinamento},
}

// SchemaFor picks the schema by table name. Tabs are discovered at runtime,
// so anything that is not the NR 35 tab gets the generic layout.
func SchemaFor(table string) Schema {
	if table == TableNR35 {
		return NR35Schema
	}
	return GenericNRSchema
}

// ApplyDeadlines recomputes every deadline column from its source column,
// overwriting whatever the store held. Stored deadlines may be stale or
// hand-edited and are never trusted.
func ApplyDeadlines(t *Table, s Schema) {
	for _, rule := range s.Deadlines {
		t.EnsureColumn(rule.Target)
		for _, r := range t.Rows {
			r[rule.Target] = DateCell(AddYears(r.Date(rule.Source), rule.OffsetYears))
		}
	}
}

package helper

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"portalsst.com/portalsst/core"
)

// TableDigest is one table's share of the daily report: counts plus the
// rows a coordinator has to act on.
type TableDigest struct {
	Table    string
	Counts   map[core.Status]int
	Expired  []core.Row
	Expiring []core.Row
}

type Digest struct {
	Date   time.Time
	Tables []TableDigest
}

// HasFindings reports whether any table carries expired or expiring rows.
// A clean day sends nothing.
func (d *Digest) HasFindings() bool {
	for _, t := range d.Tables {
		if len(t.Expired) > 0 || len(t.Expiring) > 0 {
			return true
		}
	}
	return false
}

// BuildDigest classifies one table against today. The caller loads the
// table, so store errors stay out of here.
func BuildDigest(t *core.Table, today time.Time) TableDigest {
	schema := core.SchemaFor(t.Name)
	d := TableDigest{Table: t.Name, Counts: map[core.Status]int{}}

	for _, r := range t.Rows {
		worst := core.StatusNoDate
		for _, rule := range schema.Deadlines {
			switch core.Classify(r.Date(rule.Target), today) {
			case core.StatusExpired:
				worst = core.StatusExpired
			case core.StatusExpiring:
				if worst != core.StatusExpired {
					worst = core.StatusExpiring
				}
			case core.StatusOK:
				if worst == core.StatusNoDate {
					worst = core.StatusOK
				}
			}
		}
		d.Counts[worst]++
		switch worst {
		case core.StatusExpired:
			d.Expired = append(d.Expired, r)
		case core.StatusExpiring:
			d.Expiring = append(d.Expiring, r)
		}
	}
	return d
}

// FormatSlackMessage renders the short alert for the SESMT channel.
func FormatSlackMessage(d *Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Treinamentos NR - %s*\n", d.Date.Format("02/01/2006"))
	for _, t := range d.Tables {
		if len(t.Expired) == 0 && len(t.Expiring) == 0 {
			continue
		}
		fmt.Fprintf(&b, "• %s: %d vencido(s), %d vencendo em 30 dias\n",
			t.Table, len(t.Expired), len(t.Expiring))
	}
	return b.String()
}

// FormatEmailText renders the plain-text body with the worker names.
func FormatEmailText(d *Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Resumo de vencimentos - %s\n\n", d.Date.Format("02/01/2006"))
	for _, t := range d.Tables {
		if len(t.Expired) == 0 && len(t.Expiring) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s\n", t.Table)
		for _, r := range t.Expired {
			fmt.Fprintf(&b, "  VENCIDO: %s (%s)\n", r.Text(core.ColNome), r.Text(core.ColSetor))
		}
		for _, r := range t.Expiring {
			fmt.Fprintf(&b, "  VENCENDO: %s (%s)\n", r.Text(core.ColNome), r.Text(core.ColSetor))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// AttachmentCSV exports the flagged rows of one table, reusing the
// dashboard's download format so the file opens the same way in Excel.
func AttachmentCSV(t TableDigest, columns []string) ([]byte, error) {
	out := core.NewTable(t.Table, columns)
	out.Rows = append(out.Rows, t.Expired...)
	out.Rows = append(out.Rows, t.Expiring...)

	var buf bytes.Buffer
	if err := core.WriteCSV(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package core

import "strings"

// NormalizeIdentifier prepares a matrícula or asset id for comparison:
// trim, then strip leading zeros. Badge printers and form entries disagree
// on zero padding ("075835" vs "75835" vs "0075835"), so equality runs on
// the normalized form.
func NormalizeIdentifier(raw string) string {
	s := strings.TrimSpace(raw)
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" && s != "" {
		return "0"
	}
	return trimmed
}

// FindByIdentifier returns every row whose identifier column matches the
// raw id after normalization on both sides, in table order. All matches
// stay visible for history display; the last one is the authoritative
// "current" record.
func FindByIdentifier(t *Table, col, raw string) []Row {
	want := NormalizeIdentifier(raw)
	if want == "" {
		return nil
	}
	var out []Row
	for _, r := range t.Rows {
		if NormalizeIdentifier(r.Text(col)) == want {
			out = append(out, r)
		}
	}
	return out
}

// LatestWith returns the last row whose given column is non-blank.
func LatestWith(rows []Row, col string) (Row, bool) {
	for i := len(rows) - 1; i >= 0; i-- {
		if strings.TrimSpace(rows[i].Text(col)) != "" {
			return rows[i], true
		}
	}
	return nil, false
}

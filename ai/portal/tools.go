package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"portalsst.com/portalsst/core"
	"portalsst.com/portalsst/store"
	"portalsst.com/portalsst/utils"
)

type expiringEntry struct {
	Table      string `json:"table"`
	Nome       string `json:"nome"`
	Setor      string `json:"setor"`
	Vencimento string `json:"vencimento"`
	Status     string `json:"status"`
}

// ExpiringRecords answers "who is expiring" questions for the assistant:
// it scans the named table (or all tables when empty) and returns the
// rows whose deadline falls within the window, as a JSON string the model
// can quote from.
func ExpiringRecords(ctx context.Context, st store.TableStore, table string, withinDays int) (string, error) {
	if withinDays <= 0 {
		withinDays = core.ExpiringWindowDays
	}

	names := []string{table}
	if table == "" {
		var err error
		names, err = st.List(ctx)
		if err != nil {
			return "", err
		}
	}

	today := utils.Today()
	horizon := today.AddDate(0, 0, withinDays)

	results := []expiringEntry{}
	for _, name := range names {
		tbl, err := st.Load(ctx, name)
		if err != nil {
			return "", fmt.Errorf("load table %s: %w", name, err)
		}
		schema := core.SchemaFor(name)
		for _, r := range tbl.Rows {
			for _, rule := range schema.Deadlines {
				due := r.Date(rule.Target)
				if due == nil || core.Midnight(*due).After(horizon) {
					continue
				}
				results = append(results, expiringEntry{
					Table:      name,
					Nome:       r.Text(core.ColNome),
					Setor:      r.Text(core.ColSetor),
					Vencimento: due.Format("02/01/2006"),
					Status:     string(core.Classify(due, today)),
				})
				break
			}
		}
	}

	jsonBytes, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}

// WorkerSummary resolves one matrícula into a JSON profile for the
// assistant's badge questions.
func WorkerSummary(ctx context.Context, st store.TableStore, workersTable, matricula string) (string, error) {
	tbl, err := st.Load(ctx, workersTable)
	if err != nil {
		return "", fmt.Errorf("load table %s: %w", workersTable, err)
	}

	profile, ok := core.BuildWorkerProfile(tbl, matricula, utils.Today())
	if !ok {
		return fmt.Sprintf(`{"error": "matrícula %s não encontrada"}`, matricula), nil
	}

	type trainingJSON struct {
		NR     string `json:"nr"`
		Due    string `json:"due"`
		Status string `json:"status"`
	}
	out := struct {
		Matricula string         `json:"matricula"`
		Nome      string         `json:"nome"`
		Setor     string         `json:"setor"`
		ASODue    string         `json:"asoDue"`
		ASOStatus string         `json:"asoStatus"`
		Trainings []trainingJSON `json:"trainings"`
	}{
		Matricula: profile.Matricula,
		Nome:      profile.Nome,
		Setor:     profile.Setor,
		ASODue:    formatDue(profile.ASODue),
		ASOStatus: string(profile.ASOStatus),
	}
	for _, t := range profile.Trainings {
		out.Trainings = append(out.Trainings, trainingJSON{
			NR:     t.NR,
			Due:    formatDue(t.Due),
			Status: string(t.Status),
		})
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}

func formatDue(t *time.Time) string {
	return utils.FormatDate(t, "02/01/2006")
}

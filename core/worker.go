package core

import (
	"encoding/base64"
	"strings"
	"time"

	"portalsst.com/portalsst/utils"
)

// Column names of the consolidated training sheet the multi-tool portal
// reads (one row per worker per training event).
const (
	WorkerColMatricula  = "Matricula"
	WorkerColNome       = "Nome"
	WorkerColUnidade    = "Unidade"
	WorkerColSetor      = "Setor"
	WorkerColFoto       = "Foto"
	WorkerColASOVenc    = "Vencimento ASO"
	WorkerColTreinoVenc = "Vencimento Treinamento"
)

// TrackedNRs are the training categories the worker card displays.
var TrackedNRs = []string{"NR10", "NR35", "NR11", "NR12", "NR18"}

type TrainingValidity struct {
	NR     string
	Due    *time.Time
	Status Status
}

// WorkerProfile is the consolidated view for one matrícula: identity from
// the most recent row, ASO validity, per-NR training validity, and the
// full match history for audit display.
type WorkerProfile struct {
	Matricula string
	Nome      string
	Unidade   string
	Setor     string
	FotoURL   string
	ASODue    *time.Time
	ASOStatus Status
	Trainings []TrainingValidity
	History   []Row
}

// BuildWorkerProfile resolves a matrícula against the training sheet.
// Returns false when no row matches. The last row with a name wins for
// identity fields; each NR takes its due date from the last row flagged
// "sim" for that NR.
func BuildWorkerProfile(t *Table, matricula string, today time.Time) (*WorkerProfile, bool) {
	matches := FindByIdentifier(t, WorkerColMatricula, matricula)
	if len(matches) == 0 {
		return nil, false
	}

	base, ok := LatestWith(matches, WorkerColNome)
	if !ok {
		base = matches[len(matches)-1]
	}

	aso := base.Date(WorkerColASOVenc)
	p := &WorkerProfile{
		Matricula: NormalizeIdentifier(matricula),
		Nome:      base.Text(WorkerColNome),
		Unidade:   base.Text(WorkerColUnidade),
		Setor:     base.Text(WorkerColSetor),
		FotoURL:   PhotoURL(base.Text(WorkerColFoto)),
		ASODue:    aso,
		ASOStatus: Classify(aso, today),
		History:   matches,
	}

	for _, nr := range TrackedNRs {
		if !t.HasColumn(nr) {
			continue
		}
		flagged := utils.Filter(matches, func(r Row) bool {
			return strings.Contains(strings.ToLower(r.Text(nr)), "sim")
		})
		if len(flagged) == 0 {
			continue
		}
		due := flagged[len(flagged)-1].Date(WorkerColTreinoVenc)
		p.Trainings = append(p.Trainings, TrainingValidity{
			NR:     nr,
			Due:    due,
			Status: Classify(due, today),
		})
	}

	return p, true
}

// PhotoURL rewrites OneDrive share links to their direct-download form;
// anything else passes through untouched.
func PhotoURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return ""
	}
	if !strings.Contains(url, "onedrive") && !strings.Contains(url, "1drv.ms") {
		return url
	}
	b64 := base64.StdEncoding.EncodeToString([]byte(url))
	b64 = strings.NewReplacer("/", "_", "+", "-").Replace(b64)
	b64 = strings.TrimRight(b64, "=")
	return "https://api.onedrive.com/v1.0/shares/u!" + b64 + "/root/content"
}

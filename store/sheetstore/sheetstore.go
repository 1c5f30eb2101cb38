// Package sheetstore reads tables from a published Google Sheets
// spreadsheet through its CSV export endpoint (one URL per tab). It is a
// read-only backend: the portal uses it for the lookup sheets the SESMT
// team maintains directly in Google Forms/Sheets.
package sheetstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"portalsst.com/portalsst/core"
	"portalsst.com/portalsst/store"
	"portalsst.com/portalsst/utils"
)

// loadMaxRetries bounds the fetch retries. Loads sit on interactive
// dashboard requests, so a down endpoint has to fail within a couple of
// seconds rather than hang behind a long retry loop.
const loadMaxRetries = 2

type Store struct {
	client *http.Client
	tabs   map[string]string // table name -> CSV export URL
	log    *zap.Logger
}

func New(tabs map[string]string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		client: &http.Client{Timeout: 30 * time.Second},
		tabs:   tabs,
		log:    log,
	}
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s.tabs))
	for name := range s.tabs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Load(ctx context.Context, table string) (*core.Table, error) {
	url, ok := s.tabs[table]
	if !ok {
		return nil, fmt.Errorf("tab %s: %w", table, store.ErrTableNotFound)
	}

	var body []byte
	fetch := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return backoff.Permanent(fmt.Errorf("tab %s: %w", table, store.ErrTableNotFound))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetch %s: status %d", table, resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(200*time.Millisecond),
	), loadMaxRetries), ctx)
	if err := backoff.RetryNotify(fetch, bo, func(err error, d time.Duration) {
		s.log.Warn("sheet fetch failed, retrying",
			zap.String("table", table), zap.Duration("backoff", d), zap.Error(err))
	}); err != nil {
		return nil, err
	}

	rows, err := utils.ParseCSV(newBOMTrimmer(body))
	if err != nil {
		return nil, fmt.Errorf("parse csv for %s: %w", table, err)
	}

	s.log.Debug("loaded sheet", zap.String("table", table), zap.Int("rows", len(rows)))
	return store.FromRows(table, rows), nil
}

// Save is rejected: published sheets have no write endpoint, and the
// inspection tab in particular is fed by a Google Form.
func (s *Store) Save(ctx context.Context, table string, t *core.Table) error {
	return fmt.Errorf("tab %s: %w", table, store.ErrReadOnly)
}

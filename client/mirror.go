package client

import (
	"context"
	"encoding/json"
	"fmt"
)

// Mirror holds a disposable local copy of the server record plus per-field
// drafts. The copy is never authoritative: every successful save triggers a
// full re-fetch, and a failed save leaves the last-fetched record untouched.
type Mirror struct {
	client *Client
	record json.RawMessage
	drafts map[string]json.RawMessage
}

func NewMirror(client *Client) *Mirror {
	return &Mirror{
		client: client,
		drafts: make(map[string]json.RawMessage),
	}
}

// Refresh replaces the local copy with the current server record.
func (m *Mirror) Refresh(ctx context.Context) error {
	portfolio, err := m.client.Portfolio(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(portfolio)
	if err != nil {
		return err
	}
	m.record = raw
	return nil
}

// Record decodes the last-fetched server record into target.
func (m *Mirror) Record(target any) error {
	if m.record == nil {
		return fmt.Errorf("no record fetched yet")
	}
	return json.Unmarshal(m.record, target)
}

// SetDraft stages a whole-field replacement under its wire name. The value
// must be the complete new field content; omitted parts of a nested structure
// would be dropped by the server's whole-field overwrite.
func (m *Mirror) SetDraft(field string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", field, err)
	}
	m.drafts[field] = raw
	return nil
}

// Draft returns the staged value for a field, if any.
func (m *Mirror) Draft(field string) (json.RawMessage, bool) {
	raw, ok := m.drafts[field]
	return raw, ok
}

// Cancel discards the draft for one field, reverting that section to the
// last-fetched server state.
func (m *Mirror) Cancel(field string) {
	delete(m.drafts, field)
}

// Save sends only the drafted fields, then resynchronizes from the server.
// On failure the drafts and the last-fetched record are both kept.
func (m *Mirror) Save(ctx context.Context) error {
	if len(m.drafts) == 0 {
		return nil
	}
	updated, err := m.client.UpdatePortfolio(ctx, m.drafts)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(updated)
	if err != nil {
		return err
	}
	m.record = raw
	m.drafts = make(map[string]json.RawMessage)
	return nil
}

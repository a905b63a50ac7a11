package hub

import (
	"context"
	"fmt"
)

// Instance is one row of a dataset split: a mapping from feature name to a
// value of heterogeneous type, as decoded from JSON.
type Instance map[string]interface{}

// SplitInfo describes one named partition of a dataset.
type SplitInfo struct {
	Config  string
	Name    string
	NumRows int
}

// Dataset is an in-memory handle for one hub dataset: the split inventory
// plus the client used to fetch rows on demand. It lives for the duration of
// one invocation and is never persisted.
type Dataset struct {
	Name   string
	Splits []SplitInfo

	client *Client
}

// Split returns the split info for the given split name. When multiple
// configs carry the split, the "default" config wins, else the first match.
func (d *Dataset) Split(name string) (SplitInfo, bool) {
	var found SplitInfo
	ok := false
	for _, s := range d.Splits {
		if s.Name != name {
			continue
		}
		if !ok || s.Config == "default" {
			found = s
			ok = true
		}
	}
	return found, ok
}

// HasSplit reports whether the dataset carries the named split.
func (d *Dataset) HasSplit(name string) bool {
	_, ok := d.Split(name)
	return ok
}

// FirstRow fetches the first instance of the requested split.
func (d *Dataset) FirstRow(ctx context.Context, split string) (Instance, error) {
	info, ok := d.Split(split)
	if !ok {
		return nil, fmt.Errorf("dataset %s has no split %q", d.Name, split)
	}

	rows, err := d.client.fetchRows(ctx, d.Name, info.Config, info.Name, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rows for %s/%s: %w", d.Name, split, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("split %s of dataset %s is empty", split, d.Name)
	}
	return rows[0], nil
}

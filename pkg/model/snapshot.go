package model

import (
	"encoding/json"
	"os"
	"strings"
)

// VulnRecord is a web vulnerability flattened with the host and service it belongs to.
type VulnRecord struct {
	HostIP string   `json:"host_ip"`
	Ports  []string `json:"ports"`
	WebVuln
}

func (r VulnRecord) key() string {
	return strings.Join([]string{r.HostIP, strings.Join(r.Ports, ","), r.Name, r.Method, r.Path, r.Query}, "|")
}

// SnapshotDiff classifies findings of the current store against a baseline.
type SnapshotDiff struct {
	New       []VulnRecord
	Fixed     []VulnRecord
	Unchanged []VulnRecord
}

type snapshot struct {
	Hosts []*Host `json:"hosts"`
}

// SaveSnapshot writes the store to path as JSON.
func (s *Store) SaveSnapshot(path string) error {
	s.mu.RLock()
	data, err := json.MarshalIndent(snapshot{Hosts: s.Hosts}, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSnapshot replaces the store content with the snapshot at path.
func (s *Store) LoadSnapshot(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	if snap.Hosts == nil {
		snap.Hosts = make([]*Host, 0)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Hosts = snap.Hosts
	s.reindex()
	return nil
}

// Vulns lists every web vulnerability in host, service and creation order.
func (s *Store) Vulns() []VulnRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []VulnRecord
	for _, h := range s.Hosts {
		for _, svc := range h.Services {
			for _, v := range svc.Vulns {
				out = append(out, VulnRecord{HostIP: h.IP, Ports: svc.Ports, WebVuln: v.WebVuln})
			}
		}
	}
	return out
}

// CompareSnapshot diffs the receiver (current scan) against baseline.
func (s *Store) CompareSnapshot(baseline *Store) SnapshotDiff {
	current := s.Vulns()
	previous := baseline.Vulns()

	seen := make(map[string]bool, len(previous))
	for _, r := range previous {
		seen[r.key()] = true
	}

	var diff SnapshotDiff
	inCurrent := make(map[string]bool, len(current))
	for _, r := range current {
		inCurrent[r.key()] = true
		if seen[r.key()] {
			diff.Unchanged = append(diff.Unchanged, r)
		} else {
			diff.New = append(diff.New, r)
		}
	}
	for _, r := range previous {
		if !inCurrent[r.key()] {
			diff.Fixed = append(diff.Fixed, r)
		}
	}
	return diff
}

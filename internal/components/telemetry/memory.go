package telemetry

import (
	"strings"
	"sync"
)

// Report is a single call recorded by MemoryAPI.
type Report struct {
	Id     string
	Params []any
}

// MemoryAPI records every report in memory so tests can assert on them.
type MemoryAPI struct {
	mutex    sync.Mutex
	broken   []Report
	warnings []Report
	counts   map[string]int64
}

func NewMemoryAPI() *MemoryAPI {
	return &MemoryAPI{counts: map[string]int64{}}
}

func (m *MemoryAPI) ReportBroken(id string, params ...any) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.broken = append(m.broken, Report{Id: id, Params: params})
}

func (m *MemoryAPI) ReportWarning(id string, params ...any) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.warnings = append(m.warnings, Report{Id: id, Params: params})
}

func (m *MemoryAPI) ReportDebug(string, ...any) {}

func (m *MemoryAPI) ReportCount(id string, count int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.counts[id] = count
}

func (m *MemoryAPI) Broken() []Report {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]Report(nil), m.broken...)
}

func (m *MemoryAPI) Warnings() []Report {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]Report(nil), m.warnings...)
}

// Count returns the last count reported under an id ending with suffix.
func (m *MemoryAPI) Count(suffix string) (int64, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for id, n := range m.counts {
		if strings.HasSuffix(id, suffix) {
			return n, true
		}
	}
	return 0, false
}

// HasBroken checks if a breakage was reported under an id ending with suffix.
func (m *MemoryAPI) HasBroken(suffix string) bool {
	for _, r := range m.Broken() {
		if strings.HasSuffix(r.Id, suffix) {
			return true
		}
	}
	return false
}

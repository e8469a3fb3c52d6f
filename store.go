package main

import "sync"

// Session upload store
//
// Parsed uploads live in memory for the duration of the session; nothing
// is persisted. Upload order is kept because first-seen tie-breaks in the
// aggregation depend on record order.

type uploadEntry struct {
	info    Upload
	records []Record
}

type uploadStore struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]*uploadEntry
}

// store is the process-wide session, set up in main and swapped out by
// tests.
var store = newUploadStore()

func newUploadStore() *uploadStore {
	return &uploadStore{entries: make(map[string]*uploadEntry)}
}

func (s *uploadStore) add(info Upload, records []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append(s.order, info.ID)
	s.entries[info.ID] = &uploadEntry{info: info, records: records}
}

// list returns the uploads in upload order.
func (s *uploadStore) list() []Upload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uploads := make([]Upload, 0, len(s.order))
	for _, id := range s.order {
		uploads = append(uploads, s.entries[id].info)
	}
	return uploads
}

// allRecords concatenates every upload's records in upload order.
func (s *uploadStore) allRecords() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []Record
	for _, id := range s.order {
		records = append(records, s.entries[id].records...)
	}
	return records
}

func (s *uploadStore) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.entries = make(map[string]*uploadEntry)
}

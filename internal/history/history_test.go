package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/bl3edit/internal/types"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestRecordAndList(t *testing.T) {
	m := newManager(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []Entry{
		{Timestamp: base, FileName: "1.sav", Kind: types.HeaderPcSave, Destination: "/saves/1.sav", Backups: []string{"/b/1_a.sav"}, Checksum: "aaaaaaaa", Size: 10},
		{Timestamp: base.Add(time.Minute), FileName: "profile.sav", Kind: types.HeaderPcProfile, Destination: "/saves/profile.sav", Backups: []string{"/b/p.sav"}, Checksum: "bbbbbbbb", Size: 20, GuardianInjection: true},
		{Timestamp: base.Add(2 * time.Minute), FileName: "1.sav", Kind: types.HeaderPs4Save, Destination: "/saves/1.sav", Backups: []string{"/b/1_b.sav", "/b/2_b.sav"}, Checksum: "cccccccc", Size: 30},
	}
	for _, e := range entries {
		if err := m.Record(e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	all, err := m.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("List(0) returned %d entries, want 3", len(all))
	}
	if all[0].Checksum != "cccccccc" || all[2].Checksum != "aaaaaaaa" {
		t.Errorf("List should be newest first, got %s..%s", all[0].Checksum, all[2].Checksum)
	}
	if !all[0].Timestamp.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("Timestamp = %v, want %v", all[0].Timestamp, base.Add(2*time.Minute))
	}
	if len(all[0].Backups) != 2 || all[0].Kind != types.HeaderPs4Save {
		t.Errorf("entry = %+v", all[0])
	}
	if !all[1].GuardianInjection {
		t.Error("guardian injection flag not preserved")
	}

	limited, err := m.List(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("List(1) returned %d entries", len(limited))
	}

	count, err := m.GetCount()
	if err != nil || count != 3 {
		t.Errorf("GetCount() = %d, %v", count, err)
	}
}

func TestListForFile(t *testing.T) {
	m := newManager(t)
	for _, name := range []string{"1.sav", "2.sav", "1.sav"} {
		if err := m.Record(Entry{FileName: name, Kind: types.HeaderPcSave, Destination: "/saves/" + name}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := m.ListForFile("/saves/1.sav")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("ListForFile() returned %d entries, want 2", len(got))
	}
	for _, e := range got {
		if e.FileName != "1.sav" {
			t.Errorf("unexpected entry %+v", e)
		}
	}

	none, err := m.ListForFile("missing.sav")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("ListForFile(missing) = %v", none)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	m, err := NewManager(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Record(Entry{FileName: "1.sav", Kind: types.HeaderPcSave}); err != nil {
		t.Fatal(err)
	}
	m.Close()

	m, err = NewManager(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer m.Close()

	count, err := m.GetCount()
	if err != nil || count != 1 {
		t.Errorf("GetCount() after reopen = %d, %v", count, err)
	}
}

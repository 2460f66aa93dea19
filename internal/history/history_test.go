package history

import (
	"context"
	"testing"
	"time"

	"github.com/FluidXR/sinodroid/internal/adb"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecentConnectionsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, addr := range []string{"a:5555", "b:5555", "c:5555", "d:5555", "e:5555", "f:5555"} {
		if err := db.RecordConnection(ctx, addr); err != nil {
			t.Fatal(err)
		}
		time.Sleep(time.Millisecond)
	}
	// Reconnecting moves an address to the front without duplicating it.
	if err := db.RecordConnection(ctx, "a:5555"); err != nil {
		t.Fatal(err)
	}

	conns, err := db.RecentConnections(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(conns) != DefaultRecent {
		t.Fatalf("got %d connections, want %d", len(conns), DefaultRecent)
	}
	want := []string{"a:5555", "f:5555", "e:5555", "d:5555", "c:5555"}
	for i, c := range conns {
		if c.Address != want[i] {
			t.Errorf("conns[%d] = %s, want %s", i, c.Address, want[i])
		}
	}

	if err := db.ForgetConnection(ctx, "a:5555"); err != nil {
		t.Fatal(err)
	}
	conns, _ = db.RecentConnections(ctx, 10)
	if len(conns) != 5 || conns[0].Address != "f:5555" {
		t.Errorf("after forget: %+v", conns)
	}
}

func TestInvocations(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)

	invs := []adb.Invocation{
		{ID: "1", Program: "adb", Args: []string{"devices"}, StartedAt: old, Duration: 20 * time.Millisecond},
		{ID: "2", Program: "adb", Args: []string{"shell", "ls -l"}, ExitCode: 1, Err: "boom", StartedAt: time.Now()},
	}
	for _, inv := range invs {
		if err := db.RecordInvocation(ctx, inv); err != nil {
			t.Fatal(err)
		}
	}

	got, err := db.RecentInvocations(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "2" {
		t.Fatalf("unexpected order %+v", got)
	}
	if got[0].Args[1] != "ls -l" || got[0].ExitCode != 1 || got[0].Err != "boom" {
		t.Errorf("fields not round-tripped: %+v", got[0])
	}
	if got[1].Duration != 20*time.Millisecond {
		t.Errorf("duration = %v", got[1].Duration)
	}

	n, err := db.PruneInvocations(ctx, time.Now().Add(-24*time.Hour))
	if err != nil || n != 1 {
		t.Errorf("PruneInvocations = %d, %v", n, err)
	}
}

package cart

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, initial []byte) *Store {
	t.Helper()
	return New(NewMemoryPersistence(initial))
}

func TestAddDistinctItems(t *testing.T) {
	s := newTestStore(t, nil)

	s.Add(Item{ID: "a", Name: "Panda Icons", Price: 12})
	s.Add(Item{ID: "b", Name: "Dashboard Kit", Price: 49.5})
	s.Add(Item{ID: "c", Name: "Mono Font", Price: 0})

	assert.Equal(t, 3, s.Count())
	assert.Equal(t, 61.5, s.Total())

	items := s.Snapshot()
	require.Len(t, items, 3)
	// insertion order preserved for display
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}

func TestAddSameItemTwiceIncrementsQuantity(t *testing.T) {
	s := newTestStore(t, nil)

	s.Add(Item{ID: "a", Name: "Panda Icons", Price: 10})
	s.Add(Item{ID: "a", Name: "Panda Icons", Price: 10})

	items := s.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, 20.0, s.Total())
}

func TestUpdateQuantityClampsAtOne(t *testing.T) {
	s := newTestStore(t, nil)
	s.Add(Item{ID: "a", Price: 5})
	require.True(t, s.UpdateQuantity("a", 4))
	assert.Equal(t, 5, s.Count())

	// A delta far below zero still leaves the item at quantity 1.
	require.True(t, s.UpdateQuantity("a", -1000))
	items := s.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 5.0, s.Total())
}

func TestUpdateQuantityUnknownID(t *testing.T) {
	s := newTestStore(t, nil)
	assert.False(t, s.UpdateQuantity("ghost", 1))
}

func TestRemoveLastItemYieldsEmptyCart(t *testing.T) {
	s := newTestStore(t, nil)
	s.Add(Item{ID: "a", Price: 9.99})

	require.True(t, s.Remove("a"))
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0.0, s.Total())
	assert.Empty(t, s.Snapshot())

	assert.False(t, s.Remove("a"))
}

func TestClear(t *testing.T) {
	s := newTestStore(t, nil)
	s.Add(Item{ID: "a", Price: 1})
	s.Add(Item{ID: "b", Price: 2})

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Snapshot())
}

func TestRehydrateCoercesMalformedQuantity(t *testing.T) {
	payload := []byte(`[
		{"_id":"a","name":"Icons","price":10,"quantity":"abc"},
		{"_id":"b","name":"Kit","price":20,"quantity":3},
		{"_id":"c","name":"Font","price":5}
	]`)

	s := newTestStore(t, payload)

	items := s.Snapshot()
	require.Len(t, items, 3, "malformed entries are repaired, not dropped")
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 3, items[1].Quantity)
	assert.Equal(t, 1, items[2].Quantity)
	assert.Equal(t, 5, s.Count())
	assert.Equal(t, 75.0, s.Total())
}

func TestRehydrateCorruptPayloadStartsEmpty(t *testing.T) {
	s := newTestStore(t, []byte(`{not json`))
	assert.Empty(t, s.Snapshot())
	assert.Equal(t, 0, s.Count())
}

func TestEventsDispatched(t *testing.T) {
	var events []Event
	s := New(NewMemoryPersistence(nil), WithNotifier(func(ev Event) {
		events = append(events, ev)
	}))

	s.Add(Item{ID: "a", Name: "Icons"})
	s.Add(Item{ID: "a", Name: "Icons"})
	s.Remove("a")
	s.Clear()

	require.Len(t, events, 4)
	assert.Equal(t, EventAdded, events[0].Kind)
	assert.Equal(t, EventQuantityIncreased, events[1].Kind)
	assert.Equal(t, 2, events[1].Item.Quantity)
	assert.Equal(t, EventRemoved, events[2].Kind)
	assert.Equal(t, "Icons", events[2].Item.Name)
	assert.Equal(t, EventCleared, events[3].Kind)
}

func TestDefaultNotifierLogsMutations(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	s := New(NewMemoryPersistence(nil))
	s.Add(Item{ID: "a", Name: "Panda Icons"})
	s.Clear()

	assert.Contains(t, buf.String(), string(EventAdded))
	assert.Contains(t, buf.String(), "Panda Icons")
	assert.Contains(t, buf.String(), string(EventCleared))
}

func TestFilePersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	p := &FilePersistence{Path: path}

	s := New(p)
	s.Add(Item{ID: "a", Name: "Icons", Price: 12, Category: "Icons"})
	s.Add(Item{ID: "b", Name: "Kit", Price: 30, Category: "UI Kits"})
	s.UpdateQuantity("b", 2)

	// A fresh store on the same path sees the persisted state.
	reloaded := New(&FilePersistence{Path: path})
	assert.Equal(t, 4, reloaded.Count())
	assert.Equal(t, 102.0, reloaded.Total())

	items := reloaded.Snapshot()
	require.Len(t, items, 2)
	assert.Equal(t, "UI Kits", items[1].Category)
}

func TestFilePersistenceMissingFile(t *testing.T) {
	s := New(&FilePersistence{Path: filepath.Join(t.TempDir(), "nope.json")})
	assert.Empty(t, s.Snapshot())
}

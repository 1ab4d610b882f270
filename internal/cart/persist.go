package cart

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Persistence is the pluggable durability adapter behind a Store. Load is
// called once at construction; Save after every mutation with the full
// snapshot.
type Persistence interface {
	Load() ([]Item, error)
	Save(items []Item) error
}

// persistedItem tolerates malformed stored entries: quantity is decoded
// loosely so a junk value ("abc", null, 0) coerces to 1 instead of failing
// the whole cart.
type persistedItem struct {
	ID       string          `json:"_id"`
	Name     string          `json:"name"`
	Price    float64         `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
	Quantity json.RawMessage `json:"quantity"`
}

// DecodeItems parses a persisted cart payload, repairing entries with an
// invalid quantity rather than discarding them.
func DecodeItems(data []byte) ([]Item, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var raw []persistedItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		qty := 1
		var n float64
		if err := json.Unmarshal(r.Quantity, &n); err == nil && n >= 1 {
			qty = int(n)
		}
		items = append(items, Item{
			ID:       r.ID,
			Name:     r.Name,
			Price:    r.Price,
			Image:    r.Image,
			Category: r.Category,
			Quantity: qty,
		})
	}
	return items, nil
}

// EncodeItems serializes a cart snapshot for storage.
func EncodeItems(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(items)
}

// --- In-memory adapter (tests, ephemeral sessions) ---

type MemoryPersistence struct {
	data []byte
}

func NewMemoryPersistence(initial []byte) *MemoryPersistence {
	return &MemoryPersistence{data: initial}
}

func (m *MemoryPersistence) Load() ([]Item, error) {
	return DecodeItems(m.data)
}

func (m *MemoryPersistence) Save(items []Item) error {
	data, err := EncodeItems(items)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

// --- Local-file adapter ---

type FilePersistence struct {
	Path string
}

func (f *FilePersistence) Load() ([]Item, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return DecodeItems(data)
}

func (f *FilePersistence) Save(items []Item) error {
	data, err := EncodeItems(items)
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0644)
}

// --- Redis adapter ---

// CartTTL matches the retention used for server-side carts: untouched carts
// expire after 30 days.
const CartTTL = 30 * 24 * time.Hour

type RedisPersistence struct {
	Client *redis.Client
	Key    string
}

func (r *RedisPersistence) Load() ([]Item, error) {
	data, err := r.Client.Get(context.Background(), r.Key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return DecodeItems(data)
}

func (r *RedisPersistence) Save(items []Item) error {
	data, err := EncodeItems(items)
	if err != nil {
		return err
	}
	return r.Client.Set(context.Background(), r.Key, data, CartTTL).Err()
}

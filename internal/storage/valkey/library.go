package valkey

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/Vasu1712/scenecast/internal/models"
)

// LibraryStore keeps the library as a single JSON value in Valkey.
type LibraryStore struct {
	client valkey.Client
	key    string
}

// NewLibraryStore connects to addr and pings it.
func NewLibraryStore(ctx context.Context, addr, key string) (*LibraryStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
		Dialer:      net.Dialer{Timeout: 5 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect %s: %w", addr, err)
	}
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}
	return &LibraryStore{client: client, key: key}, nil
}

// Load reads the library. A missing key yields (nil, nil).
func (s *LibraryStore) Load(ctx context.Context) (*models.Library, error) {
	raw, err := s.client.Do(ctx, s.client.B().Get().Key(s.key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("valkey get %s: %w", s.key, err)
	}
	var lib models.Library
	if err := json.Unmarshal(raw, &lib); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	return &lib, nil
}

// Save overwrites the stored library.
func (s *LibraryStore) Save(ctx context.Context, lib *models.Library) error {
	raw, err := json.Marshal(lib)
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	cmd := s.client.B().Set().Key(s.key).Value(valkey.BinaryString(raw)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("valkey set %s: %w", s.key, err)
	}
	return nil
}

func (s *LibraryStore) Close() {
	s.client.Close()
}

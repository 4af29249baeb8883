package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/domain"
)

// SchemaVersion is written into every snapshot. Snapshots carrying any other
// version are rejected on decode.
const SchemaVersion = 1

// ErrCorruptSnapshot is returned by Decode for data that cannot be trusted.
var ErrCorruptSnapshot = errors.New("corrupt cart snapshot")

type snapshot struct {
	Version int               `json:"v"`
	Items   []domain.LineItem `json:"items"`
}

// Encode serializes items into the versioned snapshot format.
func Encode(items []domain.LineItem) ([]byte, error) {
	if items == nil {
		items = []domain.LineItem{}
	}
	data, err := json.Marshal(snapshot{Version: SchemaVersion, Items: items})
	if err != nil {
		return nil, fmt.Errorf("encode cart snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot and checks every line against the cart
// invariants. Any violation yields ErrCorruptSnapshot.
func Decode(data []byte) ([]domain.LineItem, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if snap.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: unsupported schema version %d", ErrCorruptSnapshot, snap.Version)
	}

	seen := make(map[domain.Key]struct{}, len(snap.Items))
	for i, it := range snap.Items {
		switch {
		case it.ProductID == "":
			return nil, fmt.Errorf("%w: item %d has no product id", ErrCorruptSnapshot, i)
		case it.Quantity < 1:
			return nil, fmt.Errorf("%w: item %d has quantity %d", ErrCorruptSnapshot, i, it.Quantity)
		case it.UnitPrice < 0:
			return nil, fmt.Errorf("%w: item %d has negative price", ErrCorruptSnapshot, i)
		}
		if _, dup := seen[it.Key()]; dup {
			return nil, fmt.Errorf("%w: duplicate item %s/%s", ErrCorruptSnapshot, it.ProductID, it.Variant)
		}
		seen[it.Key()] = struct{}{}
	}
	if !domain.TotalsFit(snap.Items) {
		return nil, fmt.Errorf("%w: totals out of range", ErrCorruptSnapshot)
	}

	if snap.Items == nil {
		snap.Items = []domain.LineItem{}
	}
	return snap.Items, nil
}

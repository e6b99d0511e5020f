package gamedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"market-tracker/core/storage"

	"github.com/minio/minio-go/v7"
)

const (
	worldsObject      = "gamedata/worlds.json"
	dataCentersObject = "gamedata/datacenters.json"
	marketableObject  = "gamedata/marketable.json"
)

// Catalog is the document-backed Provider. The three reference documents
// are fetched once at startup and cached; game data changes only with game
// patches, so a restart on update is acceptable.
type Catalog struct {
	worlds      map[uint32]string
	dataCenters []DataCenter
	marketable  map[uint32]struct{}
}

// Load fetches the reference documents from the bucket and builds a Catalog.
func Load(ctx context.Context, client storage.Client, bucket string) (*Catalog, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s not found", bucket)
	}

	var worldList []World
	if err := loadDocument(ctx, client, bucket, worldsObject, &worldList); err != nil {
		return nil, err
	}

	var dcs []DataCenter
	if err := loadDocument(ctx, client, bucket, dataCentersObject, &dcs); err != nil {
		return nil, err
	}

	var marketableIDs []uint32
	if err := loadDocument(ctx, client, bucket, marketableObject, &marketableIDs); err != nil {
		return nil, err
	}

	worlds := make(map[uint32]string, len(worldList))
	for _, w := range worldList {
		worlds[w.ID] = w.Name
	}

	marketable := make(map[uint32]struct{}, len(marketableIDs))
	for _, id := range marketableIDs {
		marketable[id] = struct{}{}
	}

	return &Catalog{worlds: worlds, dataCenters: dcs, marketable: marketable}, nil
}

func loadDocument(ctx context.Context, client storage.Client, bucket, object string, out any) error {
	reader, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", object, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", object, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", object, err)
	}
	return nil
}

// AvailableWorlds maps world ID to world name for all known worlds.
func (c *Catalog) AvailableWorlds() map[uint32]string {
	return c.worlds
}

// DataCenters returns all known datacenters.
func (c *Catalog) DataCenters() []DataCenter {
	return c.dataCenters
}

// IsMarketable reports whether the item can appear on the market.
func (c *Catalog) IsMarketable(itemID uint32) bool {
	_, ok := c.marketable[itemID]
	return ok
}

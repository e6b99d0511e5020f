package upload

import (
	"context"
	"time"

	"market-tracker/core/hashing"
	"market-tracker/feature/extra"
	extramodels "market-tracker/feature/extra/models"
	"market-tracker/feature/market"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// sourceIncrement credits the upload to its source. It runs for every
// authenticated upload and its own failure never rejects the payload;
// losing one count is better than losing the data.
type sourceIncrement struct {
	store  *Store
	logger *zap.Logger
}

func (b *sourceIncrement) Name() string { return "source-increment" }

func (b *sourceIncrement) ShouldExecute(*Upload) bool { return true }

func (b *sourceIncrement) Execute(ctx context.Context, up *Upload) error {
	if err := b.store.IncrementUploadCount(ctx, up.Source.APIKeyHash); err != nil {
		b.logger.Warn("Failed to credit upload to source",
			zap.String("source", up.Source.Name),
			zap.Error(err))
	}
	return nil
}

// extraCounters bumps the daily upload counter for every accepted
// upload, plus the per-world counter and the recently-updated item list
// when the payload names a world or item.
type extraCounters struct {
	extra *extra.Store
}

func (b *extraCounters) Name() string { return "extra-counters" }

func (b *extraCounters) ShouldExecute(*Upload) bool { return true }

func (b *extraCounters) Execute(ctx context.Context, up *Upload) error {
	p := up.Payload
	if err := b.extra.IncrementDailyUploads(ctx, time.Now()); err != nil {
		return err
	}
	if p.WorldID != nil {
		if err := b.extra.IncrementWorldUploads(ctx, *p.WorldID); err != nil {
			return err
		}
	}
	if p.ItemID != nil {
		return b.extra.TrackRecentlyUpdated(ctx, *p.ItemID)
	}
	return nil
}

// listings replaces the stored listing set for the upload's (world, item)
// and records the display names of listing creators and retainers.
type listings struct {
	market *market.Store
	extra  *extra.Store
}

func (b *listings) Name() string { return "listings" }

func (b *listings) ShouldExecute(up *Upload) bool {
	p := up.Payload
	return p.WorldID != nil && p.ItemID != nil && p.Listings != nil
}

func (b *listings) Execute(ctx context.Context, up *Upload) error {
	p := up.Payload
	rows, err := normalizeListings(p.Listings)
	if err != nil {
		return err
	}
	for i := range rows {
		rows[i].UploaderID = up.UploaderID
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.market.ReplaceListings(gctx, *p.WorldID, *p.ItemID, rows)
	})
	// Creator and retainer identities are already hashed in rows; index
	// them so the content lookup can resolve their names.
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		for _, id := range []identity{
			{id: row.CreatorID, name: row.CreatorName, contentType: extramodels.ContentTypePlayer},
			{id: row.RetainerID, name: row.RetainerName, contentType: extramodels.ContentTypeRetainer},
		} {
			if id.id == "" || id.name == "" {
				continue
			}
			if _, dup := seen[id.id]; dup {
				continue
			}
			seen[id.id] = struct{}{}
			id := id
			g.Go(func() error {
				return b.extra.UpsertContentID(gctx, id.id, id.contentType, id.name)
			})
		}
	}
	return g.Wait()
}

// sales merges the uploaded sale entries into the stored history and
// records buyer identities where the client reported them.
type sales struct {
	market *market.Store
	extra  *extra.Store
}

func (b *sales) Name() string { return "sales" }

func (b *sales) ShouldExecute(up *Upload) bool {
	p := up.Payload
	return p.WorldID != nil && p.ItemID != nil && p.Sales != nil
}

func (b *sales) Execute(ctx context.Context, up *Upload) error {
	p := up.Payload
	rows, buyers, err := normalizeSales(p.Sales)
	if err != nil {
		return err
	}
	for i := range rows {
		rows[i].UploaderID = up.UploaderID
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.market.MergeSales(gctx, *p.WorldID, *p.ItemID, rows)
	})
	for _, buyer := range buyers {
		g.Go(func() error {
			return b.extra.UpsertContentID(gctx, buyer.id, buyer.contentType, buyer.name)
		})
	}
	return g.Wait()
}

// taxRates overwrites the stored tax rates for the upload's world.
type taxRates struct {
	market *market.Store
}

func (b *taxRates) Name() string { return "tax-rates" }

func (b *taxRates) ShouldExecute(up *Upload) bool {
	p := up.Payload
	return p.WorldID != nil && p.TaxRates != nil
}

func (b *taxRates) Execute(ctx context.Context, up *Upload) error {
	p := up.Payload
	return b.market.UpsertTaxRates(ctx, normalizeTaxRates(*p.WorldID, p.TaxRates))
}

// contentID records the uploader's character name under the hashed
// content ID.
type contentID struct {
	extra *extra.Store
}

func (b *contentID) Name() string { return "content-id" }

func (b *contentID) ShouldExecute(up *Upload) bool {
	p := up.Payload
	return p.ContentID != "" && p.CharacterName != ""
}

func (b *contentID) Execute(ctx context.Context, up *Upload) error {
	p := up.Payload
	hashed, err := hashing.HashString(p.ContentID)
	if err != nil {
		return ErrValidation
	}
	return b.extra.UpsertContentID(ctx, hashed, extramodels.ContentTypePlayer, p.CharacterName)
}

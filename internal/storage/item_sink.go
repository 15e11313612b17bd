package storage

import (
	"context"
	"fmt"

	"market-crawler/pkg/models"
)

// ItemSink implements engine.Sink, upserting items by name.
type ItemSink struct {
	*Storage
}

// Save writes items in one transaction. An existing row with the same
// name gets its game, url, img, quantity and price overwritten. The
// first failing row rolls the whole batch back.
func (s *ItemSink) Save(ctx context.Context, items models.ItemSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO `+s.table+` (name, game, url, img, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			game = EXCLUDED.game,
			url = EXCLUDED.url,
			img = EXCLUDED.img,
			quantity = EXCLUDED.quantity,
			price = EXCLUDED.price`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, name := range items.Names() {
		it := items[name]
		if _, err := stmt.ExecContext(ctx, it.Name, it.Game.String(), it.URL, it.Img, it.Quantity, it.Price); err != nil {
			return fmt.Errorf("upsert %q: %w", it.Name, err)
		}
	}
	return tx.Commit()
}

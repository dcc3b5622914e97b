// Package persistence provides SQLite-based world state storage: entity
// ledgers, prices, and recipes, plus run metadata. Trade history is not
// stored; the book is rebuilt from scratch every day anyway.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/wareworld/internal/entity"
	"github.com/talgya/wareworld/internal/ware"
	"github.com/talgya/wareworld/internal/world"
)

// DB wraps a SQLite connection for world snapshots.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entities (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		wares_json TEXT NOT NULL,
		buy_prices_json TEXT NOT NULL,
		sell_prices_json TEXT NOT NULL,
		recipes_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type entityRow struct {
	ID         int64  `db:"id"`
	Name       string `db:"name"`
	Wares      string `db:"wares_json"`
	BuyPrices  string `db:"buy_prices_json"`
	SellPrices string `db:"sell_prices_json"`
	Recipes    string `db:"recipes_json"`
}

// SaveWorld writes the full entity set (full replace) and the last
// completed day.
func (db *DB) SaveWorld(w *world.World, day uint64) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entities"); err != nil {
		return err
	}

	for id, e := range w.Entities() {
		row, err := encodeEntity(int64(id), e)
		if err != nil {
			return fmt.Errorf("encode entity %s: %w", e.Name, err)
		}
		_, err = tx.NamedExec(`INSERT INTO entities
			(id, name, wares_json, buy_prices_json, sell_prices_json, recipes_json)
			VALUES (:id, :name, :wares_json, :buy_prices_json, :sell_prices_json, :recipes_json)`, row)
		if err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`INSERT INTO world_meta (key, value) VALUES ('last_day', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, fmt.Sprint(day)); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadWorld rebuilds the world from the last snapshot. The second return
// is the last completed day.
func (db *DB) LoadWorld() (*world.World, uint64, error) {
	var rows []entityRow
	if err := db.conn.Select(&rows, "SELECT * FROM entities ORDER BY id"); err != nil {
		return nil, 0, err
	}

	w := world.New()
	for i, row := range rows {
		if int64(i) != row.ID {
			return nil, 0, fmt.Errorf("entity ids not dense: row %d has id %d", i, row.ID)
		}
		if err := decodeEntity(w, row); err != nil {
			return nil, 0, fmt.Errorf("decode entity %s: %w", row.Name, err)
		}
	}

	var day uint64
	if v, err := db.GetMeta("last_day"); err == nil {
		fmt.Sscan(v, &day)
	}
	return w, day, nil
}

// HasWorldState reports whether a snapshot exists.
func (db *DB) HasWorldState() bool {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM entities"); err != nil {
		return false
	}
	return n > 0
}

// GetMeta reads one metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var v string
	err := db.conn.Get(&v, "SELECT value FROM world_meta WHERE key = ?", key)
	return v, err
}

// SetMeta writes one metadata value.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(`INSERT INTO world_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// RunID returns the stable id of this world's run, minting one on first use.
func (db *DB) RunID() (string, error) {
	id, err := db.GetMeta("run_id")
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	id = uuid.NewString()
	if err := db.SetMeta("run_id", id); err != nil {
		return "", err
	}
	return id, nil
}

func encodeEntity(id int64, e *entity.Entity) (entityRow, error) {
	wares := make(map[string]uint64)
	for _, t := range e.Wares.TypesSorted() {
		wares[t.String()] = uint64(e.Wares.AmountOf(t))
	}

	recipes := make([]string, len(e.Recipes))
	for i, r := range e.Recipes {
		recipes[i] = r.String()
	}

	waresJSON, err := json.Marshal(wares)
	if err != nil {
		return entityRow{}, err
	}
	buyJSON, err := json.Marshal(priceMap(e.BuyPrices))
	if err != nil {
		return entityRow{}, err
	}
	sellJSON, err := json.Marshal(priceMap(e.SellPrices))
	if err != nil {
		return entityRow{}, err
	}
	recipesJSON, err := json.Marshal(recipes)
	if err != nil {
		return entityRow{}, err
	}

	return entityRow{
		ID:         id,
		Name:       e.Name,
		Wares:      string(waresJSON),
		BuyPrices:  string(buyJSON),
		SellPrices: string(sellJSON),
		Recipes:    string(recipesJSON),
	}, nil
}

func decodeEntity(w *world.World, row entityRow) error {
	var recipeStrs []string
	if err := json.Unmarshal([]byte(row.Recipes), &recipeStrs); err != nil {
		return err
	}
	recipes := make([]entity.Recipe, len(recipeStrs))
	for i, rs := range recipeStrs {
		r, err := entity.ParseRecipe(rs)
		if err != nil {
			return err
		}
		recipes[i] = r
	}

	id := w.CreateEntity(row.Name, recipes)
	e := w.Entity(id)

	var wares map[string]uint64
	if err := json.Unmarshal([]byte(row.Wares), &wares); err != nil {
		return err
	}
	for name, amount := range wares {
		t, err := ware.ParseType(name)
		if err != nil {
			return err
		}
		e.Wares.Add(ware.New(t, ware.Amount(amount)))
	}

	if err := applyPriceJSON(&e.BuyPrices, row.BuyPrices); err != nil {
		return err
	}
	return applyPriceJSON(&e.SellPrices, row.SellPrices)
}

func priceMap(p ware.PriceTable) map[string]uint64 {
	out := make(map[string]uint64)
	for t, price := range p.Overrides() {
		out[t.String()] = uint64(price)
	}
	return out
}

func applyPriceJSON(table *ware.PriceTable, raw string) error {
	var prices map[string]uint64
	if err := json.Unmarshal([]byte(raw), &prices); err != nil {
		return err
	}
	for name, price := range prices {
		t, err := ware.ParseType(name)
		if err != nil {
			return err
		}
		table.SetPrice(t, ware.Amount(price))
	}
	return nil
}

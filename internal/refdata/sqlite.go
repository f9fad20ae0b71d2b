package refdata

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/keddard/tradewinds/internal/trade"
)

// DB wraps a SQLite connection holding the reference dataset.
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
	CREATE TABLE IF NOT EXISTS settlements (
		name TEXT PRIMARY KEY,
		region TEXT NOT NULL,
		size TEXT NOT NULL,
		wealth INTEGER NOT NULL,
		population INTEGER NOT NULL,
		garrison TEXT NOT NULL DEFAULT '',
		ruler TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		production_json TEXT NOT NULL,
		quality_flags_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cargo_types (
		name TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		spring_price REAL NOT NULL,
		summer_price REAL NOT NULL,
		autumn_price REAL NOT NULL,
		winter_price REAL NOT NULL,
		encumbrance REAL NOT NULL,
		unit_size INTEGER NOT NULL,
		quality_tiers_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS trade_pool (
		tag TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS flag_bonuses (
		flag TEXT NOT NULL,
		cargo_name TEXT NOT NULL,
		bonus INTEGER NOT NULL,
		PRIMARY KEY (flag, cargo_name)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// HasData reports whether the database has been seeded.
func (db *DB) HasData() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM settlements"); err != nil {
		return false
	}
	return count > 0
}

// Seed writes a dataset into the database (full replace).
func (db *DB) Seed(ds Dataset) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"settlements", "cargo_types", "trade_pool", "flag_bonuses"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	for _, sett := range ds.Settlements {
		production, err := json.Marshal(sett.Production)
		if err != nil {
			return err
		}
		flags, err := json.Marshal(sett.QualityFlags)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`INSERT INTO settlements
			(name, region, size, wealth, population, garrison, ruler, notes, production_json, quality_flags_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sett.Name, sett.Region, string(sett.Size), sett.Wealth, sett.Population,
			sett.Garrison, sett.Ruler, sett.Notes, string(production), string(flags))
		if err != nil {
			return fmt.Errorf("insert settlement %q: %w", sett.Name, err)
		}
	}

	for _, cargo := range ds.CargoTypes {
		tiers, err := json.Marshal(cargo.QualityTiers)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`INSERT INTO cargo_types
			(name, category, spring_price, summer_price, autumn_price, winter_price, encumbrance, unit_size, quality_tiers_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			cargo.Name, string(cargo.Category),
			cargo.SeasonalPrices[trade.SeasonSpring], cargo.SeasonalPrices[trade.SeasonSummer],
			cargo.SeasonalPrices[trade.SeasonAutumn], cargo.SeasonalPrices[trade.SeasonWinter],
			cargo.EncumbrancePerUnit, cargo.UnitSize, string(tiers))
		if err != nil {
			return fmt.Errorf("insert cargo %q: %w", cargo.Name, err)
		}
	}

	for _, tag := range ds.TradePool {
		if _, err := tx.Exec("INSERT INTO trade_pool (tag) VALUES (?)", string(tag)); err != nil {
			return err
		}
	}

	for flag, byCargo := range ds.FlagBonuses {
		for cargoName, bonus := range byCargo {
			_, err := tx.Exec("INSERT INTO flag_bonuses (flag, cargo_name, bonus) VALUES (?, ?, ?)",
				flag, cargoName, bonus)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Load reads the full dataset back out of the database.
func (db *DB) Load() (Dataset, error) {
	var ds Dataset

	type settlementRow struct {
		trade.Settlement
		ProductionJSON   string `db:"production_json"`
		QualityFlagsJSON string `db:"quality_flags_json"`
	}
	var settRows []settlementRow
	if err := db.conn.Select(&settRows, "SELECT * FROM settlements ORDER BY name"); err != nil {
		return ds, fmt.Errorf("load settlements: %w", err)
	}
	for _, row := range settRows {
		sett := row.Settlement
		if err := json.Unmarshal([]byte(row.ProductionJSON), &sett.Production); err != nil {
			return ds, fmt.Errorf("settlement %q production: %w", sett.Name, err)
		}
		if err := json.Unmarshal([]byte(row.QualityFlagsJSON), &sett.QualityFlags); err != nil {
			return ds, fmt.Errorf("settlement %q quality flags: %w", sett.Name, err)
		}
		ds.Settlements = append(ds.Settlements, sett)
	}

	type cargoRow struct {
		Name             string  `db:"name"`
		Category         string  `db:"category"`
		SpringPrice      float64 `db:"spring_price"`
		SummerPrice      float64 `db:"summer_price"`
		AutumnPrice      float64 `db:"autumn_price"`
		WinterPrice      float64 `db:"winter_price"`
		Encumbrance      float64 `db:"encumbrance"`
		UnitSize         int     `db:"unit_size"`
		QualityTiersJSON string  `db:"quality_tiers_json"`
	}
	var cargoRows []cargoRow
	if err := db.conn.Select(&cargoRows, "SELECT * FROM cargo_types ORDER BY name"); err != nil {
		return ds, fmt.Errorf("load cargo types: %w", err)
	}
	for _, row := range cargoRows {
		cargo := trade.CargoType{
			Name:     row.Name,
			Category: trade.Tag(row.Category),
			SeasonalPrices: map[trade.Season]float64{
				trade.SeasonSpring: row.SpringPrice,
				trade.SeasonSummer: row.SummerPrice,
				trade.SeasonAutumn: row.AutumnPrice,
				trade.SeasonWinter: row.WinterPrice,
			},
			EncumbrancePerUnit: row.Encumbrance,
			UnitSize:           row.UnitSize,
		}
		if err := json.Unmarshal([]byte(row.QualityTiersJSON), &cargo.QualityTiers); err != nil {
			return ds, fmt.Errorf("cargo %q quality tiers: %w", cargo.Name, err)
		}
		ds.CargoTypes = append(ds.CargoTypes, cargo)
	}

	var tags []string
	if err := db.conn.Select(&tags, "SELECT tag FROM trade_pool ORDER BY tag"); err != nil {
		return ds, fmt.Errorf("load trade pool: %w", err)
	}
	for _, tag := range tags {
		ds.TradePool = append(ds.TradePool, trade.Tag(tag))
	}

	type bonusRow struct {
		Flag      string `db:"flag"`
		CargoName string `db:"cargo_name"`
		Bonus     int    `db:"bonus"`
	}
	var bonusRows []bonusRow
	err := db.conn.Select(&bonusRows, "SELECT flag, cargo_name, bonus FROM flag_bonuses")
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return ds, fmt.Errorf("load flag bonuses: %w", err)
	}
	ds.FlagBonuses = make(map[string]map[string]int)
	for _, row := range bonusRows {
		if ds.FlagBonuses[row.Flag] == nil {
			ds.FlagBonuses[row.Flag] = make(map[string]int)
		}
		ds.FlagBonuses[row.Flag][row.CargoName] = row.Bonus
	}

	return ds, nil
}

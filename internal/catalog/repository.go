package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the browsable catalog. Catalog management happens out of
// band; this side only serves lookups.
type Repository interface {
	Games(ctx context.Context) ([]Game, error)
	Regions(ctx context.Context, gameID string) ([]Region, error)
	// Packages filters by game and region key; an empty regionKey selects
	// the packages of non-regional games.
	Packages(ctx context.Context, gameID, regionKey string) ([]Package, error)
}

// PostgresRepository reads the catalog from PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Games lists every game.
func (r *PostgresRepository) Games(ctx context.Context) ([]Game, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, image_url, category, regionable, uid_required
        FROM games ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.ID, &g.Name, &g.ImageURL, &g.Category, &g.Regionable, &g.UIDRequired); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// Regions lists the regions of one game.
func (r *PostgresRepository) Regions(ctx context.Context, gameID string) ([]Region, error) {
	rows, err := r.db.Query(ctx, `SELECT game_id, region_key, name, flag
        FROM regions WHERE game_id = $1 ORDER BY name`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regions []Region
	for rows.Next() {
		var reg Region
		if err := rows.Scan(&reg.GameID, &reg.RegionKey, &reg.Name, &reg.Flag); err != nil {
			return nil, err
		}
		regions = append(regions, reg)
	}
	return regions, rows.Err()
}

// Packages lists the purchasable denominations of one game and region.
func (r *PostgresRepository) Packages(ctx context.Context, gameID, regionKey string) ([]Package, error) {
	query := `SELECT id, game_id, COALESCE(region_key, ''), label, price
        FROM packages WHERE game_id = $1 AND COALESCE(region_key, '') = $2 ORDER BY price`
	rows, err := r.db.Query(ctx, query, gameID, regionKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []Package
	for rows.Next() {
		var p Package
		if err := rows.Scan(&p.ID, &p.GameID, &p.RegionKey, &p.Label, &p.Price); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

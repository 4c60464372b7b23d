package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"beast-ride-saga/server/models"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore handles database operations using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL storage manager
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema initializes the database schema
func (dm *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS players (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		world_name TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS worlds (
		id SERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		seed BIGINT NOT NULL,
		state JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := dm.db.Exec(schema)
	return err
}

// SavePlayer saves a player to the database
func (dm *PostgresStore) SavePlayer(player *models.Player) error {
	query := `
	INSERT INTO players (id, username, world_name, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id)
	DO UPDATE SET
		world_name = $3,
		updated_at = $5
	`

	_, err := dm.db.Exec(query, player.ID, player.Username, player.WorldName, player.CreatedAt, player.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	return nil
}

func (dm *PostgresStore) loadPlayer(where string, arg string) (*models.Player, error) {
	query := `SELECT id, username, world_name, created_at, updated_at FROM players WHERE ` + where + ` = $1`

	var player models.Player
	err := dm.db.QueryRow(query, arg).Scan(
		&player.ID, &player.Username, &player.WorldName, &player.CreatedAt, &player.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("player with %s %s: %w", where, arg, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load player: %w", err)
	}

	return &player, nil
}

// LoadPlayer loads a player from the database by ID
func (dm *PostgresStore) LoadPlayer(playerID string) (*models.Player, error) {
	return dm.loadPlayer("id", playerID)
}

// LoadPlayerByUsername loads a player from the database by username
func (dm *PostgresStore) LoadPlayerByUsername(username string) (*models.Player, error) {
	return dm.loadPlayer("username", username)
}

// SaveWorld saves a world to the database
func (dm *PostgresStore) SaveWorld(name string, world *models.WorldMap) error {
	state, err := MarshalWorld(world)
	if err != nil {
		return fmt.Errorf("failed to marshal world: %w", err)
	}

	query := `
	INSERT INTO worlds (name, width, height, seed, state)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (name)
	DO UPDATE SET
		width = $2, height = $3, seed = $4, state = $5,
		updated_at = NOW()
	`

	_, err = dm.db.Exec(query, name, world.Width, world.Height, world.Seed, string(state))
	if err != nil {
		return fmt.Errorf("failed to save world: %w", err)
	}

	return nil
}

// LoadWorld loads a world from the database by name
func (dm *PostgresStore) LoadWorld(name string) (*models.WorldMap, error) {
	query := `SELECT state FROM worlds WHERE name = $1`

	var state string
	err := dm.db.QueryRow(query, name).Scan(&state)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("world with name %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load world: %w", err)
	}

	world, err := UnmarshalWorld([]byte(state))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal world: %w", err)
	}
	return world, nil
}

// ListWorlds returns the names of all saved worlds
func (dm *PostgresStore) ListWorlds() ([]string, error) {
	return listNames(dm.db, `SELECT name FROM worlds ORDER BY name`)
}

// Close closes the database connection
func (dm *PostgresStore) Close() error {
	log.Println("Closing database connection...")
	return dm.db.Close()
}

func listNames(db *sql.DB, query string) ([]string, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

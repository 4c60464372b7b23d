package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"beast-ride-saga/server/models"
)

// SQLiteStore keeps players and compressed world saves in an embedded SQLite file
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSQLitePragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSQLiteSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func initSQLitePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSQLiteSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			world_name TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS worlds (
			name TEXT PRIMARY KEY,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			state BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// SavePlayer saves a player to the database
func (s *SQLiteStore) SavePlayer(player *models.Player) error {
	_, err := s.db.Exec(`
		INSERT INTO players (id, username, world_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET world_name = excluded.world_name, updated_at = excluded.updated_at`,
		player.ID, player.Username, player.WorldName,
		player.CreatedAt.UnixNano(), player.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadPlayer(where, arg string) (*models.Player, error) {
	var player models.Player
	var created, updated int64
	err := s.db.QueryRow(`SELECT id, username, world_name, created_at, updated_at FROM players WHERE `+where+` = ?`, arg).
		Scan(&player.ID, &player.Username, &player.WorldName, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("player with %s %s: %w", where, arg, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load player: %w", err)
	}
	player.CreatedAt = time.Unix(0, created).UTC()
	player.UpdatedAt = time.Unix(0, updated).UTC()
	return &player, nil
}

// LoadPlayer loads a player by ID
func (s *SQLiteStore) LoadPlayer(playerID string) (*models.Player, error) {
	return s.loadPlayer("id", playerID)
}

// LoadPlayerByUsername loads a player by username
func (s *SQLiteStore) LoadPlayerByUsername(username string) (*models.Player, error) {
	return s.loadPlayer("username", username)
}

// SaveWorld stores the world as a compressed blob
func (s *SQLiteStore) SaveWorld(name string, world *models.WorldMap) error {
	state, err := EncodeWorld(world)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO worlds (name, width, height, seed, state, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			width = excluded.width, height = excluded.height, seed = excluded.seed,
			state = excluded.state, updated_at = excluded.updated_at`,
		name, world.Width, world.Height, world.Seed, state, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save world: %w", err)
	}
	return nil
}

// LoadWorld loads a world by name
func (s *SQLiteStore) LoadWorld(name string) (*models.WorldMap, error) {
	var state []byte
	err := s.db.QueryRow(`SELECT state FROM worlds WHERE name = ?`, name).Scan(&state)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("world with name %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load world: %w", err)
	}
	return DecodeWorld(state)
}

// ListWorlds returns the names of all saved worlds
func (s *SQLiteStore) ListWorlds() ([]string, error) {
	return listNames(s.db, `SELECT name FROM worlds ORDER BY name`)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

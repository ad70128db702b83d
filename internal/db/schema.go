package db

// friendships holds two rows per friendship, one per direction.
// friend_requests.pair_key is "low:high" of the two user ids, so at most one
// pending request can exist per unordered pair.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	`CREATE TABLE IF NOT EXISTS friendships (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		friend_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, friend_id),
		CHECK (user_id <> friend_id)
		)`,
	`CREATE TABLE IF NOT EXISTS friend_requests (
		id TEXT PRIMARY KEY,
		sender_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		receiver_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		pair_key TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (sender_id <> receiver_id)
		)`,
	`CREATE INDEX IF NOT EXISTS idx_friend_requests_receiver ON friend_requests (receiver_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_friend_requests_sender ON friend_requests (sender_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS wines (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id TEXT PRIMARY KEY,
		stars INT NOT NULL CHECK (stars BETWEEN 1 AND 5),
		text TEXT NOT NULL DEFAULT '',
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		wine_id TEXT NOT NULL REFERENCES wines(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	`CREATE INDEX IF NOT EXISTS idx_ratings_user_created ON ratings (user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_ratings_wine_created ON ratings (wine_id, created_at)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
		)`,
	`CREATE TABLE IF NOT EXISTS friendships (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		friend_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, friend_id),
		CHECK (user_id <> friend_id)
		)`,
	`CREATE TABLE IF NOT EXISTS friend_requests (
		id TEXT PRIMARY KEY,
		sender_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		receiver_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		pair_key TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL,
		CHECK (sender_id <> receiver_id)
		)`,
	`CREATE INDEX IF NOT EXISTS idx_friend_requests_receiver ON friend_requests (receiver_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_friend_requests_sender ON friend_requests (sender_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS wines (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
		)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id TEXT PRIMARY KEY,
		stars INTEGER NOT NULL CHECK (stars BETWEEN 1 AND 5),
		text TEXT NOT NULL DEFAULT '',
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		wine_id TEXT NOT NULL REFERENCES wines(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
		)`,
	`CREATE INDEX IF NOT EXISTS idx_ratings_user_created ON ratings (user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_ratings_wine_created ON ratings (wine_id, created_at)`,
}

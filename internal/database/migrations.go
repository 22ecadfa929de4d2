package database

type Migration struct {
	Name     string
	Commands []string
}

var migrations = []Migration{
	{
		Name: "01_create_tables",
		Commands: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				chat_id INTEGER UNIQUE NOT NULL,
				username TEXT,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,

			`CREATE TABLE IF NOT EXISTS videos (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_chat_id INTEGER NOT NULL,
				file_id TEXT NOT NULL,
				file_name TEXT NOT NULL,
				duration INTEGER NOT NULL,
				flight_date INTEGER NOT NULL,
				time_slot TEXT NOT NULL,
				flight_number TEXT NOT NULL,
				camera_name TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_chat_id) REFERENCES users (chat_id),
				UNIQUE(file_id, user_chat_id)
			)`,

			`CREATE TABLE IF NOT EXISTS sessions (
				id TEXT PRIMARY KEY,
				ifly_chat_id INTEGER NOT NULL,
				target_chat_id INTEGER NOT NULL,
				username TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				expires_at INTEGER NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,

			`CREATE TABLE IF NOT EXISTS system_data (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
		},
	},
	{
		// One live (pending or active) upload session per chat.
		Name: "02_live_session_index",
		Commands: []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_live
				ON sessions (ifly_chat_id)
				WHERE status IN ('pending', 'active')`,
		},
	},
}

package sqlite

// tables lists the current schema. Statements are idempotent and run in order on every
// start; columns added after the first release are also covered by columnMigrations so
// databases created by older builds catch up.
var tables = []struct {
	name string
	ddl  string
}{
	{"businesses", `
	CREATE TABLE IF NOT EXISTS businesses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		currency TEXT DEFAULT 'USD',
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`},
	{"clients", `
	CREATE TABLE IF NOT EXISTS clients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		business_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		notes TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (business_id) REFERENCES businesses(id)
	)`},
	{"leads", `
	CREATE TABLE IF NOT EXISTS leads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		business_id INTEGER,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		notes TEXT,
		status TEXT DEFAULT 'New',
		expected_value REAL DEFAULT 0,
		probability INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`},
	{"client_activities", `
	CREATE TABLE IF NOT EXISTS client_activities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER NOT NULL,
		action TEXT NOT NULL,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
	)`},
	{"accounts", `
	CREATE TABLE IF NOT EXISTS accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		business_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		code TEXT,
		tax_category TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`},
	{"transactions", `
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		business_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		description TEXT NOT NULL,
		amount REAL NOT NULL,
		type TEXT NOT NULL,
		account_id INTEGER,
		client_id INTEGER,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (account_id) REFERENCES accounts(id),
		FOREIGN KEY (client_id) REFERENCES clients(id)
	)`},
	{"documents", `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		business_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		notes TEXT,
		expiry_date TEXT,
		status TEXT DEFAULT 'Active',
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`},
	{"invoices", `
	CREATE TABLE IF NOT EXISTS invoices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		business_id INTEGER NOT NULL,
		client_id INTEGER NOT NULL,
		invoice_number TEXT NOT NULL,
		date TEXT NOT NULL,
		due_date TEXT,
		status TEXT DEFAULT 'Draft',
		total_amount REAL NOT NULL,
		notes TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (client_id) REFERENCES clients(id)
	)`},
	{"invoice_items", `
	CREATE TABLE IF NOT EXISTS invoice_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		invoice_id INTEGER NOT NULL,
		description TEXT NOT NULL,
		quantity REAL DEFAULT 1,
		unit_price REAL DEFAULT 0,
		amount REAL DEFAULT 0,
		FOREIGN KEY (invoice_id) REFERENCES invoices(id)
	)`},
	{"products", `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		business_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		type TEXT DEFAULT 'Service',
		price REAL DEFAULT 0,
		description TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`},
	{"client_documents", `
	CREATE TABLE IF NOT EXISTS client_documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		type TEXT,
		notes TEXT,
		file_path TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
	)`},
	{"tasks", `
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		business_id INTEGER NOT NULL,
		client_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT DEFAULT 'Pending',
		due_date TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (business_id) REFERENCES businesses(id),
		FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
	)`},
	{"content_items", `
	CREATE TABLE IF NOT EXISTS content_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER NOT NULL,
		platform TEXT NOT NULL,
		title TEXT NOT NULL,
		caption TEXT,
		hashtags TEXT,
		status TEXT DEFAULT 'IDEA',
		scheduled_date TEXT,
		posted_date TEXT,
		cta_hook TEXT,
		media_path TEXT,
		notes TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
	)`},
	{"content_activities", `
	CREATE TABLE IF NOT EXISTS content_activities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content_id INTEGER NOT NULL,
		action TEXT NOT NULL,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (content_id) REFERENCES content_items(id) ON DELETE CASCADE
	)`},
	{"caption_library", `
	CREATE TABLE IF NOT EXISTS caption_library (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER,
		platform TEXT,
		caption TEXT NOT NULL,
		tags TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
	)`},
	{"hashtag_sets", `
	CREATE TABLE IF NOT EXISTS hashtag_sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER,
		platform TEXT,
		hashtags TEXT NOT NULL,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
	)`},
	{"settings", `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT
	)`},
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_clients_business ON clients(business_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_business ON leads(business_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_business_date ON transactions(business_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_expiry ON documents(business_id, expiry_date)`,
	`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items(invoice_id)`,
}

// columnMigrations are additive: a column is added only when PRAGMA table_info does not
// list it. Columns are never dropped or renamed.
var columnMigrations = []columnMigration{
	{table: "leads", column: "expected_value", definition: "REAL DEFAULT 0"},
	{table: "leads", column: "probability", definition: "INTEGER DEFAULT 0"},
	{table: "accounts", column: "tax_category", definition: "TEXT", afterAdd: mapTaxCategories},
	{table: "content_items", column: "cta_hook", definition: "TEXT"},
	{table: "content_items", column: "media_path", definition: "TEXT"},
}

package journal

// Timestamps are epoch milliseconds, the same as the trades API.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	account TEXT NOT NULL DEFAULT '',
	symbol TEXT NOT NULL,
	asset_class TEXT NOT NULL DEFAULT '',
	direction TEXT NOT NULL DEFAULT '',
	entry_date INTEGER NOT NULL,
	exit_date INTEGER,
	entry_price REAL NOT NULL DEFAULT 0,
	exit_price REAL NOT NULL DEFAULT 0,
	size REAL NOT NULL DEFAULT 0,
	gross_pnl REAL NOT NULL DEFAULT 0,
	commission REAL NOT NULL DEFAULT 0,
	swap REAL NOT NULL DEFAULT 0,
	net_pnl REAL NOT NULL DEFAULT 0,
	initial_stop_loss REAL NOT NULL DEFAULT 0,
	risk_amount REAL NOT NULL DEFAULT 0,
	risk_multiple REAL NOT NULL DEFAULT 0,
	strategy TEXT NOT NULL DEFAULT '',
	setup TEXT NOT NULL DEFAULT '',
	timeframe TEXT NOT NULL DEFAULT '',
	session TEXT NOT NULL DEFAULT '',
	confidence INTEGER NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT '',
	images TEXT NOT NULL DEFAULT '[]',
	status TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_exit ON trades(exit_date);
CREATE INDEX IF NOT EXISTS idx_trades_entry ON trades(entry_date);
`

const tradeColumns = `id, account, symbol, asset_class, direction, entry_date, exit_date,
	entry_price, exit_price, size, gross_pnl, commission, swap, net_pnl,
	initial_stop_loss, risk_amount, risk_multiple, strategy, setup, timeframe,
	session, confidence, notes, images, status`

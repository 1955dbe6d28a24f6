package history

const schema = `
CREATE TABLE IF NOT EXISTS cleanups (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    ts          INTEGER NOT NULL,
    category    TEXT    NOT NULL,
    items       INTEGER NOT NULL DEFAULT 0,
    failed      INTEGER NOT NULL DEFAULT 0,
    bytes_freed INTEGER NOT NULL DEFAULT 0,
    method      TEXT    NOT NULL DEFAULT 'permanent'
);
CREATE INDEX IF NOT EXISTS idx_cleanups_ts ON cleanups(ts);
CREATE INDEX IF NOT EXISTS idx_cleanups_category ON cleanups(category);
`

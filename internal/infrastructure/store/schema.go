package store

// Schema is the complete schema, applied idempotently on open
const Schema = `
-- Classified catalog products, upserted by manufacturer link id
CREATE TABLE IF NOT EXISTS catalog_products (
    link_id             TEXT PRIMARY KEY,
    name                TEXT NOT NULL,
    category            TEXT NOT NULL,
    cabinet_type        TEXT NOT NULL,
    default_width       REAL NOT NULL,
    default_depth       REAL NOT NULL,
    default_height      REAL NOT NULL,
    door_count          INTEGER NOT NULL DEFAULT 0,
    drawer_count        INTEGER NOT NULL DEFAULT 0,
    is_corner           INTEGER NOT NULL DEFAULT 0,
    is_sink             INTEGER NOT NULL DEFAULT 0,
    is_blind            INTEGER NOT NULL DEFAULT 0,
    spec_group          TEXT,
    room_component_type TEXT,
    raw_metadata        TEXT NOT NULL DEFAULT '{}',
    created_at          INTEGER NOT NULL,
    updated_at          INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_catalog_products_category ON catalog_products(category);

CREATE TABLE IF NOT EXISTS customers (
    id      TEXT PRIMARY KEY,
    name    TEXT NOT NULL DEFAULT '',
    email   TEXT NOT NULL DEFAULT '',
    phone   TEXT NOT NULL DEFAULT '',
    company TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS jobs (
    id              TEXT PRIMARY KEY,
    job_number      TEXT NOT NULL,
    name            TEXT NOT NULL DEFAULT '',
    customer_id     TEXT REFERENCES customers(id),
    status          TEXT NOT NULL DEFAULT '',
    delivery_method TEXT NOT NULL DEFAULT '',
    cost_ex_tax     REAL NOT NULL DEFAULT 0,
    cost_inc_tax    REAL NOT NULL DEFAULT 0,
    notes           TEXT NOT NULL DEFAULT '',
    created_at      INTEGER NOT NULL
);

-- One room per job; JSON columns hold planner-owned structures
CREATE TABLE IF NOT EXISTS rooms (
    id                TEXT PRIMARY KEY,
    job_id            TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
    name              TEXT NOT NULL DEFAULT '',
    shape             TEXT NOT NULL DEFAULT '',
    width             REAL NOT NULL DEFAULT 0,
    depth             REAL NOT NULL DEFAULT 0,
    height            REAL NOT NULL DEFAULT 0,
    global_dimensions TEXT NOT NULL DEFAULT '{}',
    finish            TEXT NOT NULL DEFAULT '{}',
    hardware          TEXT NOT NULL DEFAULT '{}',
    layout            TEXT NOT NULL DEFAULT '[]',
    created_at        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_rooms_job ON rooms(job_id, created_at);

CREATE TABLE IF NOT EXISTS price_list (
    sku         TEXT PRIMARY KEY,
    description TEXT NOT NULL DEFAULT '',
    price       REAL NOT NULL,
    updated_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS price_history (
    id         TEXT PRIMARY KEY,
    sku        TEXT NOT NULL REFERENCES price_list(sku),
    old_price  REAL NOT NULL,
    new_price  REAL NOT NULL,
    changed_by TEXT NOT NULL DEFAULT '',
    changed_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_price_history_sku ON price_history(sku, changed_at DESC);
`

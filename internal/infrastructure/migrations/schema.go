package migrations

// BaseSchema creates every table the application needs. It is safe to run on
// an existing database. Date, time and timestamp columns are TEXT so the driver
// hands them back exactly as stored.
const BaseSchema = `
CREATE TABLE IF NOT EXISTS accounts (
	username      TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL,
	full_name     TEXT NOT NULL,
	gender        TEXT NOT NULL,
	role          TEXT NOT NULL CHECK (role IN ('admin', 'doctor', 'staff')),
	phone         TEXT,
	email         TEXT,
	created_at    TEXT,
	updated_at    TEXT
);

CREATE TABLE IF NOT EXISTS doctors (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name     TEXT NOT NULL,
	last_name      TEXT NOT NULL,
	national_id    TEXT NOT NULL UNIQUE,
	gender         TEXT NOT NULL,
	birth_date     TEXT NOT NULL,
	phone          TEXT,
	specialty      TEXT NOT NULL,
	email          TEXT,
	address        TEXT,
	qualifications TEXT,
	notes          TEXT,
	username       TEXT REFERENCES accounts(username) ON DELETE SET NULL,
	created_at     TEXT,
	updated_at     TEXT
);

CREATE TABLE IF NOT EXISTS patients (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name      TEXT NOT NULL,
	last_name       TEXT NOT NULL,
	national_id     TEXT NOT NULL UNIQUE,
	gender          TEXT NOT NULL,
	birth_date      TEXT NOT NULL,
	phone           TEXT,
	hometown        TEXT,
	address         TEXT,
	email           TEXT,
	notes           TEXT,
	blood_type      TEXT,
	height          REAL,
	weight          REAL,
	medical_history TEXT,
	allergies       TEXT,
	created_at      TEXT,
	updated_at      TEXT
);

CREATE TABLE IF NOT EXISTS appointments (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	patient_id INTEGER NOT NULL REFERENCES patients(id),
	doctor_id  INTEGER NOT NULL REFERENCES doctors(id),
	date       TEXT NOT NULL,
	time       TEXT NOT NULL,
	reason     TEXT,
	status     TEXT NOT NULL DEFAULT 'waiting',
	created_at TEXT,
	updated_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_appointments_doctor_slot ON appointments (doctor_id, date, time);
CREATE INDEX IF NOT EXISTS idx_appointments_patient ON appointments (patient_id);

CREATE TABLE IF NOT EXISTS medical_records (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	patient_id     INTEGER NOT NULL REFERENCES patients(id),
	doctor_id      INTEGER NOT NULL REFERENCES doctors(id),
	visit_date     TEXT NOT NULL,
	diagnosis      TEXT NOT NULL,
	symptoms       TEXT,
	treatment_plan TEXT,
	prescription   TEXT,
	conclusion     TEXT,
	notes          TEXT,
	created_at     TEXT,
	updated_at     TEXT
);

CREATE INDEX IF NOT EXISTS idx_medical_records_patient ON medical_records (patient_id);

CREATE TABLE IF NOT EXISTS app_settings (
	setting_key   TEXT PRIMARY KEY,
	setting_value TEXT,
	setting_type  TEXT NOT NULL DEFAULT 'string',
	description   TEXT,
	updated_at    TEXT
);
`

const migrationsTable = `
CREATE TABLE IF NOT EXISTS migrations (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	migration_name TEXT NOT NULL UNIQUE,
	applied_at     TEXT NOT NULL
);`

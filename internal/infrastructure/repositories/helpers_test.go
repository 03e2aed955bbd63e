package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE,
		password_hash TEXT,
		role TEXT,
		avatar_url TEXT,
		bio TEXT,
		token_balance REAL NOT NULL DEFAULT 0,
		kyc_verified BOOLEAN NOT NULL DEFAULT 0,
		kyc_id_last4 TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createContributionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE contributions (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		author_id TEXT NOT NULL,
		file_name TEXT,
		ipfs_cid TEXT,
		ipfs_file_size INTEGER,
		ipfs_pinned_at TEXT,
		tx_hash TEXT,
		reward_amount REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'Pending',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createKycDocumentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE kyc_documents (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		file_name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		verified_email TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createTokenTransferTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE token_transfers (
		id TEXT PRIMARY KEY,
		sender TEXT NOT NULL,
		recipient TEXT NOT NULL,
		amount REAL NOT NULL,
		tx_hash TEXT,
		created_at DATETIME
	);`)
}

package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// SessionKey is the fixed slot the serialized session record lives under.
const SessionKey = "boutique_user"

// SessionRepo persists the auth session as a single kv row. Reads and writes
// are not transactional; a single writer is assumed.
type SessionRepo struct{ db *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{db: db} }

// Load returns the stored session bytes, or nil when the slot is empty.
func (r *SessionRepo) Load() ([]byte, error) {
	var v string
	err := r.db.Get(&v, `SELECT v FROM kv WHERE k=?`, SessionKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

func (r *SessionRepo) Save(b []byte) error {
	_, err := r.db.Exec(`INSERT INTO kv(k,v,updated_at)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(k) DO UPDATE SET v=excluded.v,updated_at=CURRENT_TIMESTAMP`,
		SessionKey, string(b))
	return err
}

func (r *SessionRepo) Clear() error {
	_, err := r.db.Exec(`DELETE FROM kv WHERE k=?`, SessionKey)
	return err
}

package sqlkv

import (
	"database/sql"

	"github.com/mmynk/chamaa/internal/models"
	"github.com/mmynk/chamaa/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store exposes the four ledger collections over one *sql.DB.
type Store struct {
	db            *sql.DB
	admins        *Collection[models.Admin]
	groups        *Collection[models.Group]
	members       *Collection[models.Member]
	contributions *Collection[models.Contribution]
}

// NewStore wires the ledger collections to db. The schema must already exist.
func NewStore(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:            db,
		admins:        NewCollection[models.Admin](db, dialect, storage.AdminsCollection),
		groups:        NewCollection[models.Group](db, dialect, storage.GroupsCollection),
		members:       NewCollection[models.Member](db, dialect, storage.MembersCollection),
		contributions: NewCollection[models.Contribution](db, dialect, storage.ContributionsCollection),
	}
}

func (s *Store) Admins() storage.Collection[models.Admin]   { return s.admins }
func (s *Store) Groups() storage.Collection[models.Group]   { return s.groups }
func (s *Store) Members() storage.Collection[models.Member] { return s.members }
func (s *Store) Contributions() storage.Collection[models.Contribution] {
	return s.contributions
}

// DB exposes the underlying handle for health checks and tests.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

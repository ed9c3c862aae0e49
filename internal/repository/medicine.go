package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/templui/medtrack/internal/model"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrMedicineNotFound = errors.New("medicine not found")
)

// MedicineRepository stores medicine entries in insertion order.
// Create assigns the next position; entries are never deleted.
// ToggleTaken flips the taken flag in a single step and returns the stored result.
type MedicineRepository interface {
	Create(med *model.Medicine) error
	ByID(id string) (*model.Medicine, error)
	ByPosition(position int) (*model.Medicine, error)
	Medicines() ([]*model.Medicine, error)
	Count() (int, error)
	ToggleTaken(id string) (*model.Medicine, error)
}

// maxCreateAttempts bounds retries when concurrent inserts race for the same seq.
const maxCreateAttempts = 5

type medicineRepository struct {
	db *sqlx.DB
}

func NewMedicineRepository(db *sqlx.DB) MedicineRepository {
	return &medicineRepository{db: db}
}

func (r *medicineRepository) Create(med *model.Medicine) error {
	// seq is MAX(seq)+1 computed inside the insert. Two pooled connections can
	// compute the same value; the UNIQUE(seq) constraint rejects the loser, which
	// then retries against the new maximum.
	query := `INSERT INTO medicines (id, seq, name, remind_time, taken, created_at, updated_at)
	          VALUES ($1, (SELECT COALESCE(MAX(seq), -1) + 1 FROM medicines), $2, $3, $4, $5, $6)
	          RETURNING seq`

	var err error
	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		err = r.db.QueryRow(query,
			med.ID,
			med.Name,
			med.Time,
			med.Taken,
			med.CreatedAt,
			med.UpdatedAt,
		).Scan(&med.Position)
		if err == nil || !isUniqueViolation(err) {
			return err
		}
	}

	return fmt.Errorf("failed to assign position after %d attempts: %w", maxCreateAttempts, err)
}

// isUniqueViolation reports whether err is a unique constraint failure from
// Postgres (SQLSTATE 23505) or SQLite.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		// primary key and unique failures share the "UNIQUE constraint failed" message
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
			strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
	}

	return false
}

func (r *medicineRepository) ByID(id string) (*model.Medicine, error) {
	med := &model.Medicine{}
	query := `SELECT * FROM medicines WHERE id = $1`

	err := r.db.Get(med, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrMedicineNotFound
	}
	if err != nil {
		return nil, err
	}

	return med, nil
}

func (r *medicineRepository) ByPosition(position int) (*model.Medicine, error) {
	med := &model.Medicine{}
	query := `SELECT * FROM medicines WHERE seq = $1`

	err := r.db.Get(med, query, position)
	if err == sql.ErrNoRows {
		return nil, ErrMedicineNotFound
	}
	if err != nil {
		return nil, err
	}

	return med, nil
}

func (r *medicineRepository) Medicines() ([]*model.Medicine, error) {
	var meds []*model.Medicine
	query := `SELECT * FROM medicines ORDER BY seq ASC`

	err := r.db.Select(&meds, query)
	if err != nil {
		return nil, err
	}

	return meds, nil
}

func (r *medicineRepository) Count() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM medicines`
	err := r.db.QueryRow(query).Scan(&count)
	return count, err
}

func (r *medicineRepository) ToggleTaken(id string) (*model.Medicine, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// NOT taken is evaluated by the database, so concurrent toggles never flip a stale value.
	// The row stays locked until commit, so the read below sees this toggle.
	result, err := tx.Exec(`UPDATE medicines SET taken = NOT taken, updated_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrMedicineNotFound
	}

	med := &model.Medicine{}
	err = tx.Get(med, `SELECT * FROM medicines WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return med, nil
}

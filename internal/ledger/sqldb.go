package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// transactionRecord is the relational row for a Transaction. The amount is
// stored as text so no precision is lost to floating point.
type transactionRecord struct {
	ID          string `gorm:"primaryKey"`
	Kind        string `gorm:"index"`
	Amount      string
	Date        time.Time `gorm:"index"`
	Time        string
	Description string
	Category    string
	BankName    string
	RefNumber   string `gorm:"index"`
	SlipFile    string
	ContentType string
	RawText     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (transactionRecord) TableName() string {
	return "transactions"
}

func toRecord(t *Transaction) *transactionRecord {
	return &transactionRecord{
		ID:          t.ID,
		Kind:        string(t.Kind),
		Amount:      t.Amount.String(),
		Date:        t.Date,
		Time:        t.Time,
		Description: t.Description,
		Category:    t.Category,
		BankName:    t.BankName,
		RefNumber:   t.RefNumber,
		SlipFile:    t.SlipFile,
		ContentType: t.ContentType,
		RawText:     t.RawText,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r *transactionRecord) toTransaction() (*Transaction, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("parsing amount of transaction %s: %w", r.ID, err)
	}
	return &Transaction{
		ID:          r.ID,
		Kind:        Kind(r.Kind),
		Amount:      amount,
		Date:        r.Date.UTC(),
		Time:        r.Time,
		Description: r.Description,
		Category:    r.Category,
		BankName:    r.BankName,
		RefNumber:   r.RefNumber,
		SlipFile:    r.SlipFile,
		ContentType: r.ContentType,
		RawText:     r.RawText,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

// SQLDB implements the DB interface on a relational database through gorm
type SQLDB struct {
	db *gorm.DB
}

// NewSQLiteDB opens (or creates) a SQLite database at path and migrates the schema
func NewSQLiteDB(path string) (*SQLDB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	if err := db.AutoMigrate(&transactionRecord{}); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &SQLDB{db: db}, nil
}

// SaveTransaction inserts or replaces a transaction
func (s *SQLDB) SaveTransaction(t *Transaction) error {
	err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(toRecord(t)).Error
	if err != nil {
		return fmt.Errorf("saving transaction: %w", err)
	}
	return nil
}

// GetTransaction retrieves a transaction by ID
func (s *SQLDB) GetTransaction(id string) (*Transaction, error) {
	var r transactionRecord
	if err := s.db.First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting transaction: %w", err)
	}
	return r.toTransaction()
}

// ListTransactions returns all transactions
func (s *SQLDB) ListTransactions() ([]*Transaction, error) {
	var records []transactionRecord
	if err := s.db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	transactions := make([]*Transaction, 0, len(records))
	for i := range records {
		t, err := records[i].toTransaction()
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

// DeleteTransaction removes a transaction
func (s *SQLDB) DeleteTransaction(id string) error {
	res := s.db.Delete(&transactionRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return nil
}

// Close closes the underlying connection pool
func (s *SQLDB) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("getting sql handle: %w", err)
	}
	return sqlDB.Close()
}

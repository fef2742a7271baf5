package service

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

var ErrEmptyBackup = errors.New("backup file is empty")

// Backup writes a full backup of db to file.
func Backup(db *badger.DB, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		return fmt.Errorf("failed to backup database: %w", err)
	}
	return f.Sync()
}

// Restore loads a backup written by Backup into db.
func Restore(db *badger.DB, file string) (err error) {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat backup file: %w", err)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("%s: %w", file, ErrEmptyBackup)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred during restore: %v", r)
		}
	}()
	if err := db.Load(f, 4); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}

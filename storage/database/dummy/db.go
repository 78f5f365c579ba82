package dummydb

import (
	"sync"

	"github.com/volatiletech/null/v8"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/note"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/subject"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/task"
)

type (
	DB struct {
		user    *userTable
		subject *subjectTable
		task    *taskTable
		note    *noteTable
	}

	userRecord struct {
		ID           string
		Cookie       null.String
		LastSyncedAt null.Time
	}

	userTable struct {
		sync.RWMutex
		table map[string]*userRecord
	}

	subjectTable struct {
		sync.RWMutex
		table map[string]*subject.Subject
	}

	taskTable struct {
		sync.RWMutex
		table map[string]*task.Task
	}

	noteTable struct {
		sync.RWMutex
		table map[string]*note.Note
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:    &userTable{table: make(map[string]*userRecord)},
		subject: &subjectTable{table: make(map[string]*subject.Subject)},
		task:    &taskTable{table: make(map[string]*task.Task)},
		note:    &noteTable{table: make(map[string]*note.Note)},
	}
	return db, nil
}

// AddUser seeds a user record; the real schema owns user creation elsewhere.
func (db *DB) AddUser(id string) {
	db.user.Lock()
	defer db.user.Unlock()
	db.user.table[id] = &userRecord{ID: id}
}

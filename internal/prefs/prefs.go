// Package prefs persists user interface preferences in a bbolt file. Nothing
// stored here affects record data.
package prefs

import (
	"fmt"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const (
	bucketPrefs = "prefs" // key: preference name -> value
	keyTheme    = "theme"
)

// Theme names a colour scheme for table output.
type Theme string

const (
	ThemeDefault      Theme = "Default"
	ThemeDarkMode     Theme = "Dark Mode"
	ThemeForest       Theme = "Forest"
	ThemeProfessional Theme = "Professional"
)

// Themes lists the known themes in menu order.
var Themes = []Theme{ThemeDefault, ThemeDarkMode, ThemeForest, ThemeProfessional}

// ParseTheme matches name against the known themes ignoring case. Unknown
// names report false.
func ParseTheme(name string) (Theme, bool) {
	name = strings.TrimSpace(name)
	for _, t := range Themes {
		if strings.EqualFold(string(t), name) {
			return t, true
		}
	}
	return ThemeDefault, false
}

type Store struct {
	db *bbolt.DB
}

// Open opens or creates the preference file at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open prefs %s: %w", path, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPrefs))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create prefs bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the stored value for key and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(bucketPrefs)).Get([]byte(key))
		if v != nil {
			value, found = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("read pref %q: %w", key, err)
	}
	return value, found, nil
}

func (s *Store) Set(key, value string) error {
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketPrefs)).Put([]byte(key), []byte(value))
	}); err != nil {
		return fmt.Errorf("write pref %q: %w", key, err)
	}
	return nil
}

// Theme returns the saved theme. A missing or unrecognised value yields
// ThemeDefault.
func (s *Store) Theme() (Theme, error) {
	v, ok, err := s.Get(keyTheme)
	if err != nil || !ok {
		return ThemeDefault, err
	}
	t, _ := ParseTheme(v)
	return t, nil
}

// SetTheme saves name, which must be one of Themes.
func (s *Store) SetTheme(name string) (Theme, error) {
	t, ok := ParseTheme(name)
	if !ok {
		return ThemeDefault, fmt.Errorf("unknown theme %q", name)
	}
	return t, s.Set(keyTheme, string(t))
}

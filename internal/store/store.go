package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/zalando/go-keyring"
	"go.yaml.in/yaml/v3"
)

// IndexFileName is the publisher index file inside the config directory.
const IndexFileName = "publishers.yaml"

// PublisherNotFoundError is returned when no PAT is stored for a publisher.
type PublisherNotFoundError struct {
	Publisher string
}

func (e *PublisherNotFoundError) Error() string {
	return fmt.Sprintf("unknown publisher %q: run 'vsce login %s' first", e.Publisher, e.Publisher)
}

type keyringBackend interface {
	Set(service, user, password string) error
	Get(service, user string) (string, error)
	Delete(service, user string) error
}

type defaultKeyringBackend struct{}

func (defaultKeyringBackend) Set(service, user, password string) error {
	return keyring.Set(service, user, password)
}

func (defaultKeyringBackend) Get(service, user string) (string, error) {
	return keyring.Get(service, user)
}

func (defaultKeyringBackend) Delete(service, user string) error {
	return keyring.Delete(service, user)
}

type index struct {
	Publishers []string `yaml:"publishers"`
}

// Store maps publisher names to PATs.
type Store struct {
	service   string
	backend   keyringBackend
	indexPath string
}

// New returns a Store keeping secrets under the keychain service and its
// index in dir.
func New(service, dir string) *Store {
	return &Store{
		service:   service,
		backend:   defaultKeyringBackend{},
		indexPath: filepath.Join(dir, IndexFileName),
	}
}

// Get returns the PAT stored for publisher.
func (s *Store) Get(publisher string) (string, error) {
	publisher = strings.TrimSpace(publisher)
	if publisher == "" {
		return "", errors.New("publisher is required")
	}

	pat, err := s.backend.Get(s.service, publisher)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", &PublisherNotFoundError{Publisher: publisher}
		}
		return "", fmt.Errorf("keychain get %q: %w", publisher, err)
	}
	if strings.TrimSpace(pat) == "" {
		return "", &PublisherNotFoundError{Publisher: publisher}
	}
	return pat, nil
}

// Add stores pat for publisher, replacing any previous value.
func (s *Store) Add(publisher, pat string) error {
	publisher = strings.TrimSpace(publisher)
	if publisher == "" {
		return errors.New("publisher is required")
	}
	if strings.TrimSpace(pat) == "" {
		return errors.New("personal access token cannot be empty")
	}

	if err := s.backend.Set(s.service, publisher, pat); err != nil {
		return fmt.Errorf("keychain set %q: %w", publisher, err)
	}

	idx, err := s.readIndex()
	if err != nil {
		return err
	}
	if !slices.Contains(idx.Publishers, publisher) {
		idx.Publishers = append(idx.Publishers, publisher)
		slices.Sort(idx.Publishers)
	}
	return s.writeIndex(idx)
}

// Remove deletes the PAT for publisher.
func (s *Store) Remove(publisher string) error {
	publisher = strings.TrimSpace(publisher)

	idx, err := s.readIndex()
	if err != nil {
		return err
	}
	known := slices.Contains(idx.Publishers, publisher)

	if err := s.backend.Delete(s.service, publisher); err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("keychain delete %q: %w", publisher, err)
		}
		if !known {
			return &PublisherNotFoundError{Publisher: publisher}
		}
	}

	idx.Publishers = slices.DeleteFunc(idx.Publishers, func(p string) bool { return p == publisher })
	return s.writeIndex(idx)
}

// List returns the known publisher names in sorted order.
func (s *Store) List() ([]string, error) {
	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	return idx.Publishers, nil
}

func (s *Store) readIndex() (*index, error) {
	data, err := os.ReadFile(s.indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &index{}, nil
		}
		return nil, fmt.Errorf("reading publisher index: %w", err)
	}

	var idx index
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing publisher index %s: %w", s.indexPath, err)
	}
	return &idx, nil
}

func (s *Store) writeIndex(idx *index) error {
	if err := os.MkdirAll(filepath.Dir(s.indexPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(idx)
	if err != nil {
		return fmt.Errorf("marshaling publisher index: %w", err)
	}
	if err := os.WriteFile(s.indexPath, data, 0600); err != nil {
		return fmt.Errorf("writing publisher index: %w", err)
	}
	return nil
}

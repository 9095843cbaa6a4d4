// Package secrets keeps API keys in a per-user file (0600) sealed with
// AES-GCM. Not a replacement for an OS keychain, but it keeps the key out
// of plain-text config.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const fileName = "keys.json"

// ErrNotFound is returned by Get when no key is stored for the service.
var ErrNotFound = errors.New("key not found")

type keyFile struct {
	Keys map[string]string `json:"keys"` // service -> base64(nonce|ciphertext)
}

type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. An empty dir means the user
// config directory.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("user config dir: %w", err)
		}
		dir = filepath.Join(base, "citycoords")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Put(service, key string) error {
	if service = norm(service); service == "" {
		return fmt.Errorf("service required")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("key required")
	}
	kf, err := s.load()
	if err != nil {
		return err
	}
	sealed, err := seal([]byte(key))
	if err != nil {
		return err
	}
	kf.Keys[service] = base64.StdEncoding.EncodeToString(sealed)
	return s.save(kf)
}

func (s *Store) Get(service string) (string, error) {
	if service = norm(service); service == "" {
		return "", fmt.Errorf("service required")
	}
	kf, err := s.load()
	if err != nil {
		return "", err
	}
	enc, ok := kf.Keys[service]
	if !ok {
		return "", ErrNotFound
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", fmt.Errorf("decode stored key: %w", err)
	}
	plain, err := open(raw)
	if err != nil {
		return "", fmt.Errorf("open stored key: %w", err)
	}
	return string(plain), nil
}

func (s *Store) Delete(service string) error {
	kf, err := s.load()
	if err != nil {
		return err
	}
	delete(kf.Keys, norm(service))
	return s.save(kf)
}

func (s *Store) path() string {
	return filepath.Join(s.dir, fileName)
}

func (s *Store) load() (keyFile, error) {
	kf := keyFile{Keys: map[string]string{}}
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return kf, nil
		}
		return kf, err
	}
	if err := json.Unmarshal(data, &kf); err != nil {
		return kf, fmt.Errorf("parse %s: %w", fileName, err)
	}
	if kf.Keys == nil {
		kf.Keys = map[string]string{}
	}
	return kf, nil
}

func (s *Store) save(kf keyFile) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path())
}

func norm(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func masterKey() []byte {
	sum := sha256.Sum256([]byte(fmt.Sprintf("citycoords-%s-%s", runtime.GOOS, os.Getenv("USER"))))
	return sum[:]
}

func newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func seal(plain []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func open(sealed []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	return gcm.Open(nil, sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():], nil)
}

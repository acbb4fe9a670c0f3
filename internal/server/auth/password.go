package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

// Argon2id parameters: 19 MiB, 2 passes, 1 lane.
const (
	DefaultArgonMemory  = 19 * 1024 // KiB
	DefaultArgonTime    = 2
	DefaultArgonThreads = 1
	DefaultArgonSaltLen = 16
	DefaultArgonKeyLen  = 32
)

// PasswordHasher derives and verifies password hashes.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, encoded, password string) (bool, error)
}

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	saltLen uint32
	keyLen  uint32
}

// Argon2Hasher produces PHC strings of the form
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<hash>
//
// so verification reads every parameter back from the stored value.
type Argon2Hasher struct {
	params argonParams
	sem    *semaphore.Weighted
}

// HasherOption configures an Argon2Hasher.
type HasherOption func(*Argon2Hasher)

// WithMaxConcurrent bounds how many Hash/Verify calls run at once. Callers
// beyond the limit wait for a slot until their context is done. n <= 0
// means unbounded.
func WithMaxConcurrent(n int) HasherOption {
	return func(h *Argon2Hasher) {
		if n > 0 {
			h.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithArgonCost overrides memory (KiB) and time. Intended for tests that
// need cheap hashes; zero values keep the defaults.
func WithArgonCost(memory, time uint32) HasherOption {
	return func(h *Argon2Hasher) {
		if memory > 0 {
			h.params.memory = memory
		}
		if time > 0 {
			h.params.time = time
		}
	}
}

func NewArgon2Hasher(opts ...HasherOption) *Argon2Hasher {
	h := &Argon2Hasher{
		params: argonParams{
			memory:  DefaultArgonMemory,
			time:    DefaultArgonTime,
			threads: DefaultArgonThreads,
			saltLen: DefaultArgonSaltLen,
			keyLen:  DefaultArgonKeyLen,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash derives a new salted hash of password.
func (h *Argon2Hasher) Hash(ctx context.Context, password string) (string, error) {
	release, err := h.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	salt := make([]byte, h.params.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: salt: %v", common.ErrHashFailure, err)
	}

	p := h.params
	key := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.keyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.time, p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify reports whether password matches encoded. A false result with a nil
// error means "does not match"; an error means encoded could not be used.
func (h *Argon2Hasher) Verify(ctx context.Context, encoded, password string) (bool, error) {
	p, salt, want, err := decodePHC(encoded)
	if err != nil {
		return false, err
	}

	release, err := h.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer release()

	got := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func (h *Argon2Hasher) acquire(ctx context.Context) (func(), error) {
	if h.sem == nil {
		return func() {}, nil
	}
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { h.sem.Release(1) }, nil
}

func decodePHC(encoded string) (argonParams, []byte, []byte, error) {
	var p argonParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("%w: not an argon2id PHC string", common.ErrHashFailure)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: unsupported version", common.ErrHashFailure)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return p, nil, nil, fmt.Errorf("%w: parameters: %v", common.ErrHashFailure, err)
	}
	if p.memory == 0 || p.time == 0 || p.threads == 0 {
		return p, nil, nil, fmt.Errorf("%w: zero parameter", common.ErrHashFailure)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, fmt.Errorf("%w: salt encoding", common.ErrHashFailure)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, fmt.Errorf("%w: hash encoding", common.ErrHashFailure)
	}

	return p, salt, key, nil
}

package token

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"
	"time"

	"github.com/MrEthical07/bitmask"
	"github.com/MrEthical07/bitmask/flags"
	"github.com/MrEthical07/bitmask/internal/testdomain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHS256(t *testing.T, mutate ...func(*Config)) *Manager {
	t.Helper()

	cfg := Config{
		TTL:           time.Minute,
		SigningMethod: MethodHS256,
		PrivateKey:    []byte("0123456789abcdef0123456789abcdef"),
		Issuer:        "bitmask-test",
		Audience:      "api",
	}
	for _, fn := range mutate {
		fn(&cfg)
	}

	mgr, err := NewManager(cfg)
	require.NoError(t, err)
	return mgr
}

func TestNewManagerValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing ttl", Config{SigningMethod: MethodHS256, PrivateKey: []byte("k")}},
		{"negative leeway", Config{TTL: time.Minute, Leeway: -time.Second, SigningMethod: MethodHS256, PrivateKey: []byte("k")}},
		{"huge leeway", Config{TTL: time.Minute, Leeway: time.Hour, SigningMethod: MethodHS256, PrivateKey: []byte("k")}},
		{"hs256 without key", Config{TTL: time.Minute, SigningMethod: MethodHS256}},
		{"ed25519 without keys", Config{TTL: time.Minute, SigningMethod: MethodEd25519}},
		{"ed25519 bad key", Config{TTL: time.Minute, SigningMethod: MethodEd25519, PublicKey: []byte("short")}},
		{"unknown method", Config{TTL: time.Minute, SigningMethod: "rs256", PrivateKey: []byte("k")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewManager(tt.cfg)
			require.Error(t, err)
		})
	}
}

func TestIssueParseHS256(t *testing.T) {
	mgr := newHS256(t)

	m, err := bitmask.FromBitString("0100000000000001", false)
	require.NoError(t, err)

	tok, err := mgr.Issue("alice", m)
	require.NoError(t, err)

	claims, err := mgr.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "bitmask-test", claims.Issuer)
	assert.Empty(t, claims.Domain)
	assert.True(t, m.Equal(claims.Bitmask()))

	_, err = uuid.Parse(claims.ID)
	require.NoError(t, err)
}

func TestIssueParseEd25519(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	issuer, err := NewManager(Config{TTL: time.Minute, SigningMethod: MethodEd25519, PrivateKey: priv, KeyID: "k1"})
	require.NoError(t, err)
	verifier, err := NewManager(Config{TTL: time.Minute, SigningMethod: MethodEd25519, PublicKey: pub, KeyID: "k1"})
	require.NoError(t, err)

	tok, err := issuer.Issue("bob", bitmask.FromBinary([]byte{0x82}))
	require.NoError(t, err)

	claims, err := verifier.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "01000001", claims.Bitmask().String())

	claims, err = issuer.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Subject)

	_, err = verifier.Issue("bob", bitmask.MustZeroes(8))
	require.Error(t, err)

	other, err := NewManager(Config{TTL: time.Minute, SigningMethod: MethodEd25519, PublicKey: pub, KeyID: "k2"})
	require.NoError(t, err)
	_, err = other.Parse(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejects(t *testing.T) {
	mgr := newHS256(t)
	tok, err := mgr.Issue("carol", bitmask.MustZeroes(8))
	require.NoError(t, err)

	t.Run("tampered", func(t *testing.T) {
		parts := strings.Split(tok, ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		_, err := mgr.Parse(parts[0] + "." + parts[1] + "." + string(sig))
		require.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := newHS256(t, func(c *Config) { c.PrivateKey = []byte("another-secret-another-secret-00") })
		_, err := other.Parse(tok)
		require.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong audience", func(t *testing.T) {
		other := newHS256(t, func(c *Config) { c.Audience = "admin" })
		_, err := other.Parse(tok)
		require.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := newHS256(t, func(c *Config) { c.Issuer = "someone-else" })
		_, err := other.Parse(tok)
		require.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		short := newHS256(t, func(c *Config) { c.TTL = time.Nanosecond })
		expired, err := short.Issue("carol", bitmask.MustZeroes(8))
		require.NoError(t, err)

		_, err = short.Parse(expired)
		require.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := mgr.Parse("not.a.jwt")
		require.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestFlagsRoundTrip(t *testing.T) {
	mgr := newHS256(t)

	tok, err := IssueFlags(mgr, "dave", testdomain.Domain, testdomain.Baz, testdomain.Foo)
	require.NoError(t, err)

	list, claims, err := ParseFlags(mgr, tok, testdomain.Domain)
	require.NoError(t, err)
	assert.Equal(t, []testdomain.Option{testdomain.Foo, testdomain.Baz}, list)
	assert.Equal(t, "foo", claims.Domain)
	assert.Equal(t, "01000001", claims.Bitmask().String())
}

func TestFlagsErrors(t *testing.T) {
	mgr := newHS256(t)

	_, err := IssueFlags(mgr, "erin", testdomain.Domain, testdomain.Option(2))
	require.ErrorIs(t, err, flags.ErrTypeMismatch)

	tok, err := IssueFlags(mgr, "erin", testdomain.WideDomain, testdomain.High)
	require.NoError(t, err)

	_, _, err = ParseFlags(mgr, tok, testdomain.Domain)
	require.ErrorIs(t, err, ErrDomainMismatch)

	// same domain name, narrower definition: bit 8 has no member
	narrow := flags.MustDomain("wide", testdomain.Low)
	_, _, err = ParseFlags(mgr, tok, narrow)
	require.ErrorIs(t, err, flags.ErrDecoding)

	_, _, err = ParseFlags(mgr, "x.y.z", testdomain.Domain)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

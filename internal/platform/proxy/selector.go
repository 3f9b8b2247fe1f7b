// Package proxy decides the outbound connection parameters for each
// upstream fetch. In session mode a fresh sticky-session address is built
// per call by splicing a random token between the configured credential
// fragments, so the upstream provider sees a rotating session identity.
package proxy

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"sync"

	"stock_gateway/internal/platform/config"
)

const (
	digits       = "0123456789"
	alphanumeric = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Selector produces a proxy address per outbound call.
type Selector struct {
	cfg config.Config

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a Selector seeded from the given source. A seed of 0
// lets math/rand pick its own; tests pass a fixed seed for determinism.
func NewSelector(cfg config.Config, seed int64) *Selector {
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	return &Selector{cfg: cfg, rng: rng}
}

// Select returns the proxy address for one outbound call, or "" when no
// proxy should be used. Session addresses are never reused across calls.
func (s *Selector) Select() string {
	switch s.cfg.ProxyMode {
	case config.ProxySession:
		return Build(s.cfg.ProxyPrefix, s.token(), s.cfg.ProxySuffix)
	case config.ProxyStatic:
		return s.cfg.ProxyStaticURL
	default:
		return ""
	}
}

// ProxyFunc adapts the selector to http.Transport.Proxy so that every
// request attempt mints its own session address.
func (s *Selector) ProxyFunc() func(*http.Request) (*url.URL, error) {
	return func(*http.Request) (*url.URL, error) {
		addr := s.Select()
		if addr == "" {
			return nil, nil
		}
		u, err := url.Parse(addr)
		if err != nil {
			return nil, fmt.Errorf("parse proxy address: %w", err)
		}
		return u, nil
	}
}

func (s *Selector) token() string {
	n := s.cfg.ProxyTokenLength
	if n <= 0 {
		n = 8
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return token(s.rng, n, s.cfg.ProxyTokenAlnum)
}

// Build assembles a sticky-session proxy address from its fragments.
// Pure string concatenation, unit-testable without network access.
func Build(prefix, token, suffix string) string {
	return prefix + token + suffix
}

// Token generates an n-character random token, digits only or lowercase
// alphanumeric. The token varies the apparent session identity per call;
// it carries no secret, so math/rand entropy is sufficient.
func Token(n int, alnum bool) string {
	return token(nil, n, alnum)
}

func token(rng *rand.Rand, n int, alnum bool) string {
	alphabet := digits
	if alnum {
		alphabet = alphanumeric
	}
	b := make([]byte, n)
	for i := range b {
		if rng != nil {
			b[i] = alphabet[rng.Intn(len(alphabet))]
		} else {
			b[i] = alphabet[rand.Intn(len(alphabet))]
		}
	}
	return string(b)
}

// Package upstream defines errors shared by every external provider client.
package upstream

import "errors"

// ErrNoIdentity indicates a provider returned no identifiable record for
// the requested symbol. Callers map this to a not-found failure; the result
// is never cached.
var ErrNoIdentity = errors.New("upstream returned no identifiable record")

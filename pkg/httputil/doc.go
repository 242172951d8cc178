// Package httputil provides HTTP handler utilities for consistent JSON
// encoding/decoding and error envelopes.
package httputil

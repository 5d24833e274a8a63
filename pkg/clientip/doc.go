// Package clientip resolves the originating client address of a request
// served behind reverse proxies.
//
// Headers are examined in order and the first valid address wins:
//
//  1. CF-Connecting-IP
//  2. DO-Connecting-IP
//  3. X-Forwarded-For (first valid entry)
//  4. X-Real-IP
//  5. RemoteAddr
//
// Headers are trusted as sent. Only deploy behind a proxy that overwrites
// them, otherwise visitors can pick their own address. Use New with
// WithHeaders to restrict the list to what your edge actually sets.
//
// Middleware stores the resolved address in the request context, where
// FromContext reads it back.
package clientip

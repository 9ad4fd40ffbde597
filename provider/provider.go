// Package provider defines translation provider implementations.
//
// Providers receive a batch request and return translated text keyed by item
// id. A missing id in the result map means that item failed; the reconciler
// treats it as a per-item failure without touching siblings.
package provider

import "github.com/nesmachny/translio"

// TranslationProvider is an alias to the main package interface for convenience.
type TranslationProvider = translio.TranslationProvider

// Request is an alias to the main package batch request type.
type Request = translio.BatchRequest

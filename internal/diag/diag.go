// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag implements the Diagnostic Sink: an accumulator for
// non-fatal problems the type translator encounters (an inexpressible type
// shape, a signature without a real declaration, a blacklisted name) that
// records an advisory fact about a site rather than aborting the
// translation.
package diag

import (
	"fmt"
	"go/token"

	log "github.com/golang/glog"
	"google.golang.org/protobuf/types/known/structpb"
)

// Category classifies a Diagnostic as a small closed enum the host can
// filter or count on, rather than a free-form string.
type Category int

const (
	// Unspecified is the zero value, for a diagnostic the caller files
	// under no more specific category.
	Unspecified Category = iota
	// InexpressibleType marks a type the target dialect has no shape for
	// (the Alias Scope sentinel, or any other "give up" path).
	InexpressibleType
	// SyntheticSignature marks a signature translated without a real
	// declaration backing it.
	SyntheticSignature
	// BlacklistedReference marks a symbol suppressed by the path blacklist.
	BlacklistedReference
)

func (c Category) String() string {
	switch c {
	case InexpressibleType:
		return "inexpressible-type"
	case SyntheticSignature:
		return "synthetic-signature"
	case BlacklistedReference:
		return "blacklisted-reference"
	default:
		return "unspecified"
	}
}

// Diagnostic is one recorded advisory fact.
type Diagnostic struct {
	Pos      token.Pos
	Message  string
	Category Category

	// Metadata carries free-form debug context (e.g. the type's internal
	// string form) attached at the call site. It is a *structpb.Struct, a
	// well-known, already-generated proto message, rather than a
	// hand-rolled schema.
	Metadata *structpb.Struct
}

// Sink collects Diagnostics over the lifetime of a single translation run.
// It is not safe for concurrent use without external synchronization; hosts
// that translate files in parallel (as translatecmd does with errgroup)
// should give each worker its own Sink and merge the results.
type Sink struct {
	fset  *token.FileSet
	diags []Diagnostic
}

// NewSink returns an empty Sink. fset is used only to render positions in
// the V(1) glog output of Warn and WarnWithMetadata and may be nil if the host never calls that
// path with a meaningful Pos.
func NewSink(fset *token.FileSet) *Sink {
	return &Sink{fset: fset}
}

// Warn records a diagnostic at pos with the given category, formatting
// message the way fmt.Sprintf does, and mirrors it to glog at V(1).
func (s *Sink) Warn(pos token.Pos, category Category, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.diags = append(s.diags, Diagnostic{Pos: pos, Message: msg, Category: category})
	if log.V(1) {
		if s.fset != nil && pos.IsValid() {
			log.Infof("%s: %s: %s", s.fset.Position(pos), category, msg)
		} else {
			log.Infof("%s: %s", category, msg)
		}
	}
}

// WarnWithMetadata is Warn plus a free-form metadata payload, built
// from a plain map via structpb.NewStruct. A metadata value the proto
// wire format cannot represent (a channel, a func, a cyclic map) is dropped
// with a single glog warning rather than failing the translation.
func (s *Sink) WarnWithMetadata(pos token.Pos, category Category, metadata map[string]any, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	st, err := structpb.NewStruct(metadata)
	if err != nil {
		log.Warningf("diag: dropping metadata for %q: %v", msg, err)
		st = nil
	}
	s.diags = append(s.diags, Diagnostic{Pos: pos, Message: msg, Category: category, Metadata: st})
	if log.V(1) {
		if s.fset != nil && pos.IsValid() {
			log.Infof("%s: %s: %s", s.fset.Position(pos), category, msg)
		} else {
			log.Infof("%s: %s", category, msg)
		}
	}
}

// Diagnostics returns every Diagnostic recorded so far, in recording order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diags
}

// Len reports how many diagnostics have been recorded.
func (s *Sink) Len() int { return len(s.diags) }

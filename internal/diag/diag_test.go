// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag_test

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/closuretypes/internal/diag"
)

func TestWarnAccumulatesInOrder(t *testing.T) {
	s := diag.NewSink(token.NewFileSet())
	s.Warn(token.NoPos, diag.InexpressibleType, "cannot express %s", "Foo")
	s.Warn(token.NoPos, diag.SyntheticSignature, "no declaration for %s", "bar")

	got := s.Diagnostics()
	require.Len(t, got, 2)
	assert.Equal(t, "cannot express Foo", got[0].Message)
	assert.Equal(t, diag.InexpressibleType, got[0].Category)
	assert.Equal(t, "no declaration for bar", got[1].Message)
	assert.Equal(t, diag.SyntheticSignature, got[1].Category)
	assert.Equal(t, 2, s.Len())
}

func TestWarnWithMetadataAttachesStruct(t *testing.T) {
	s := diag.NewSink(nil)
	s.WarnWithMetadata(token.NoPos, diag.BlacklistedReference, map[string]any{
		"debugType": "!Foo<?>",
	}, "blacklisted symbol %s", "Foo")

	got := s.Diagnostics()
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Metadata)
	assert.Equal(t, "!Foo<?>", got[0].Metadata.GetFields()["debugType"].GetStringValue())
}

func TestWarnWithMetadataDropsUnrepresentableValues(t *testing.T) {
	s := diag.NewSink(nil)
	s.WarnWithMetadata(token.NoPos, diag.Unspecified, map[string]any{
		"bad": make(chan int),
	}, "unrepresentable metadata")

	got := s.Diagnostics()
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Metadata, "metadata should be dropped when the payload cannot be converted")
}

func TestCategoryString(t *testing.T) {
	cases := map[diag.Category]string{
		diag.Unspecified:          "unspecified",
		diag.InexpressibleType:    "inexpressible-type",
		diag.SyntheticSignature:   "synthetic-signature",
		diag.BlacklistedReference: "blacklisted-reference",
	}
	for cat, want := range cases {
		if got := cat.String(); got != want {
			t.Errorf("Category(%d).String() = %q, want %q", cat, got, want)
		}
	}
}

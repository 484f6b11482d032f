// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"encoding/json"
	"testing"
)

func TestPriceUnmarshalNumeric(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(`{"id":"1","price":1899.9}`), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p.Price.Display() != "S/ 1899.90" {
		t.Errorf("Expected 'S/ 1899.90', got %q", p.Price.Display())
	}
	if _, ok := p.Price.Amount(); !ok {
		t.Error("Expected numeric amount to be available")
	}
}

func TestPriceUnmarshalFormattedString(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(`{"id":"1","price":"S/ 2,499.00"}`), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p.Price.Display() != "S/ 2,499.00" {
		t.Errorf("Expected formatted string verbatim, got %q", p.Price.Display())
	}
	if _, ok := p.Price.Amount(); ok {
		t.Error("Expected no numeric amount for a formatted string")
	}
}

func TestPriceUnmarshalQuotedNumber(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(`{"id":"1","price":"799"}`), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p.Price.Display() != "S/ 799.00" {
		t.Errorf("Expected quoted number treated as numeric, got %q", p.Price.Display())
	}
}

func TestPriceUnmarshalNull(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(`{"id":"1","price":null}`), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !p.Price.IsZero() {
		t.Error("Expected zero price for null")
	}
}

func TestProductDetailURLPrefersViewLink(t *testing.T) {
	p := Product{
		ProductURL:      "https://compy.pe/p/1",
		ViewProductLink: "https://compy.pe/galeria/producto/1",
	}
	if got := p.DetailURL(); got != "https://compy.pe/galeria/producto/1" {
		t.Errorf("Expected view link preferred, got %q", got)
	}

	p.ViewProductLink = ""
	if got := p.DetailURL(); got != "https://compy.pe/p/1" {
		t.Errorf("Expected fallback to product URL, got %q", got)
	}
}

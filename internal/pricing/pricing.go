// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pricing holds the static plan configuration for the pricing pages.
// Prices are stored in paise so tax math stays integral; formatting to rupees
// happens only at the edge.
package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Audience identifies which pricing page a plan belongs to.
type Audience string

// Audiences with a pricing page.
const (
	AudienceOwner   Audience = "owner"
	AudienceBuyer   Audience = "buyer"
	AudienceSeller  Audience = "seller"
	AudienceTenant  Audience = "tenant"
	AudienceAgent   Audience = "agent"
	AudienceBuilder Audience = "builder"
)

// GSTRatePercent is the GST rate applied to all plans.
const GSTRatePercent = 18

// Plan is one subscription tier on a pricing page.
type Plan struct {
	Audience     Audience `json:"audience"`
	Name         string   `json:"name"`
	PricePaise   int64    `json:"price_paise"` // Base price excluding GST
	DurationDays int      `json:"duration_days"`
	Features     []string `json:"features"`
	Highlight    bool     `json:"highlight"` // Marks the recommended tier
}

// Breakdown is the tax split of a plan price.
type Breakdown struct {
	BasePaise  int64  `json:"base_paise"`
	GSTPaise   int64  `json:"gst_paise"`
	TotalPaise int64  `json:"total_paise"`
	Base       string `json:"base"`
	GST        string `json:"gst"`
	Total      string `json:"total"`
}

// GST returns the GST amount in paise for a base price, rounded half up.
func GST(basePaise int64) int64 {
	return (basePaise*GSTRatePercent + 50) / 100
}

// PriceBreakdown returns the base, GST and total for a plan, formatted in INR.
func (p Plan) PriceBreakdown() Breakdown {
	gst := GST(p.PricePaise)
	total := p.PricePaise + gst
	return Breakdown{
		BasePaise:  p.PricePaise,
		GSTPaise:   gst,
		TotalPaise: total,
		Base:       FormatINR(p.PricePaise),
		GST:        FormatINR(gst),
		Total:      FormatINR(total),
	}
}

// IsFree reports whether the plan costs nothing.
func (p Plan) IsFree() bool {
	return p.PricePaise == 0
}

// inr formats numbers with Indian digit grouping (lakh, crore).
var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders a paise amount as a rupee string. Whole-rupee amounts
// drop the paise fraction.
func FormatINR(paise int64) string {
	if paise%100 == 0 {
		return inr.Sprintf("₹%v", number.Decimal(paise/100))
	}
	return inr.Sprintf("₹%v", number.Decimal(float64(paise)/100,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// ValidAudience reports whether the string names a known pricing audience.
func ValidAudience(s string) bool {
	_, ok := plansByAudience[Audience(s)]
	return ok
}

// PlansFor returns the plans for an audience in display order, or nil for an
// unknown audience.
func PlansFor(audience Audience) []Plan {
	return plansByAudience[audience]
}

// Audiences returns all audiences that have a pricing page, in display order.
func Audiences() []Audience {
	return []Audience{
		AudienceOwner,
		AudienceBuyer,
		AudienceSeller,
		AudienceTenant,
		AudienceAgent,
		AudienceBuilder,
	}
}

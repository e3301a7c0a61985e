// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package pricing

// plansByAudience is the static plan configuration. Plans change with
// marketing campaigns, not user input, so they live in code rather than the
// store.
var plansByAudience = map[Audience][]Plan{
	AudienceOwner: {
		{
			Audience:     AudienceOwner,
			Name:         "Free Listing",
			PricePaise:   0,
			DurationDays: 60,
			Features: []string{
				"1 property listing",
				"Photo gallery",
				"Direct tenant contact",
			},
		},
		{
			Audience:     AudienceOwner,
			Name:         "Relax",
			PricePaise:   1_499_00,
			DurationDays: 90,
			Highlight:    true,
			Features: []string{
				"Dedicated relationship manager",
				"Top slot on search results",
				"Professional photoshoot",
				"Rental agreement assistance",
			},
		},
		{
			Audience:     AudienceOwner,
			Name:         "MoneyBack",
			PricePaise:   2_999_00,
			DurationDays: 90,
			Features: []string{
				"Everything in Relax",
				"Refund if not rented in 45 days",
				"Tenant background verification",
			},
		},
	},
	AudienceBuyer: {
		{
			Audience:     AudienceBuyer,
			Name:         "Basic",
			PricePaise:   0,
			DurationDays: 90,
			Features: []string{
				"Browse all listings",
				"Contact up to 5 owners",
			},
		},
		{
			Audience:     AudienceBuyer,
			Name:         "Power Buyer",
			PricePaise:   1_999_00,
			DurationDays: 180,
			Highlight:    true,
			Features: []string{
				"Unlimited owner contacts",
				"Instant alerts on new listings",
				"Locality price reports",
				"Home loan assistance",
			},
		},
	},
	AudienceSeller: {
		{
			Audience:     AudienceSeller,
			Name:         "Standard Sale",
			PricePaise:   0,
			DurationDays: 90,
			Features: []string{
				"1 property listing",
				"Buyer enquiries by email",
			},
		},
		{
			Audience:     AudienceSeller,
			Name:         "Assisted Sale",
			PricePaise:   4_999_00,
			DurationDays: 180,
			Highlight:    true,
			Features: []string{
				"Field visits coordinated for you",
				"Price negotiation support",
				"Legal paperwork assistance",
				"Premium placement across the site",
			},
		},
	},
	AudienceTenant: {
		{
			Audience:     AudienceTenant,
			Name:         "Free Search",
			PricePaise:   0,
			DurationDays: 30,
			Features: []string{
				"Browse owner listings",
				"Contact up to 5 owners",
			},
		},
		{
			Audience:     AudienceTenant,
			Name:         "Freedom",
			PricePaise:   1_199_00,
			DurationDays: 45,
			Highlight:    true,
			Features: []string{
				"Unlimited owner contacts",
				"Relationship manager finds matches",
				"Rental agreement home delivery",
			},
		},
	},
	AudienceAgent: {
		{
			Audience:     AudienceAgent,
			Name:         "Agent Starter",
			PricePaise:   9_999_00,
			DurationDays: 365,
			Features: []string{
				"25 active listings",
				"Verified agent badge",
				"Lead inbox",
			},
		},
		{
			Audience:     AudienceAgent,
			Name:         "Agent Pro",
			PricePaise:   24_999_00,
			DurationDays: 365,
			Highlight:    true,
			Features: []string{
				"Unlimited active listings",
				"Featured placement in locality pages",
				"Bulk listing import",
				"Performance dashboard",
			},
		},
	},
	AudienceBuilder: {
		{
			Audience:     AudienceBuilder,
			Name:         "Project Showcase",
			PricePaise:   49_999_00,
			DurationDays: 180,
			Features: []string{
				"Dedicated project microsite",
				"Slot in the builder slider",
				"Lead routing to your sales team",
			},
		},
		{
			Audience:     AudienceBuilder,
			Name:         "Project Premium",
			PricePaise:   1_49_999_00,
			DurationDays: 365,
			Highlight:    true,
			Features: []string{
				"Everything in Showcase",
				"Homepage banner campaigns",
				"Site visit scheduling",
				"Dedicated account manager",
			},
		},
	},
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

// Service tag constants, used by lead capture to attribute enquiries.
const (
	ServiceLoans      = "loans"
	ServiceSecurity   = "security"
	ServiceMovers     = "movers"
	ServiceLegal      = "legal"
	ServiceHandover   = "handover"
	ServiceManagement = "management"
	ServiceArchitects = "architects"
	ServicePainting   = "painting"
	ServiceInterior   = "interior_design"
)

// Service describes one service landing page.
type Service struct {
	Tag         string `json:"tag"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Email       string `json:"-"` // enquiry recipient
}

// services is the static directory of service landing pages.
var services = []Service{
	{Tag: ServiceLoans, Title: "Home Loans", Description: "Compare pre-approved offers from 30+ banks and NBFCs.", Email: "loans@homehni.com"},
	{Tag: ServiceSecurity, Title: "Home Security", Description: "Smart locks, cameras, and 24x7 monitoring for your home.", Email: "security@homehni.com"},
	{Tag: ServiceMovers, Title: "Packers & Movers", Description: "Insured door-to-door shifting in 40+ cities.", Email: "movers@homehni.com"},
	{Tag: ServiceLegal, Title: "Legal Services", Description: "Title verification, agreement drafting, and registration support.", Email: "legal@homehni.com"},
	{Tag: ServiceHandover, Title: "Property Handover", Description: "Snag-list inspection and handover assistance for new homes.", Email: "handover@homehni.com"},
	{Tag: ServiceManagement, Title: "Property Management", Description: "Rent collection, maintenance, and tenant management for NRI owners.", Email: "management@homehni.com"},
	{Tag: ServiceArchitects, Title: "Architects", Description: "Licensed architects for plans, elevations, and approvals.", Email: "architects@homehni.com"},
	{Tag: ServicePainting, Title: "Painting", Description: "Professional home painting with a one-year warranty.", Email: "painting@homehni.com"},
	{Tag: ServiceInterior, Title: "Interior Design", Description: "End-to-end interiors with 3D designs and EMI options.", Email: "interiors@homehni.com"},
}

// Services returns the full service directory.
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// FindService returns the service with the given tag.
func FindService(tag string) (Service, bool) {
	for _, s := range services {
		if s.Tag == tag {
			return s, true
		}
	}
	return Service{}, false
}

// IsValidServiceTag checks if a tag names a known service.
func IsValidServiceTag(tag string) bool {
	_, ok := FindService(tag)
	return ok
}

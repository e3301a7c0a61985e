package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/homehni/homehni-web/internal/catalog"
	"github.com/homehni/homehni-web/internal/model"
)

// Seed creates the initial marketing pages when the database is empty. Each
// page gets its sections from the content catalog so a fresh install renders
// a complete homepage without any editing.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountPages(ctx)
	if err != nil {
		return fmt.Errorf("counting pages: %w", err)
	}
	if count > 0 {
		slog.Info("pages already exist, skipping seed")
		return nil
	}

	pages := []struct {
		title    string
		slug     string
		desc     string
		sections []string
	}{
		{
			title: "Home",
			slug:  "home",
			desc:  "India's trusted platform to buy, sell and rent property with zero brokerage.",
			sections: []string{
				model.SectionHeroSearch,
				model.SectionFeaturedProperties,
				model.SectionServices,
				model.SectionStats,
				model.SectionTestimonials,
				model.SectionMobileApp,
			},
		},
		{
			title: "About Us",
			slug:  "about",
			desc:  "Who we are and why thousands of owners list with us.",
			sections: []string{
				model.SectionHero,
				model.SectionWhyUse,
				model.SectionStats,
				model.SectionCTABanner,
			},
		},
		{
			title: "Contact",
			slug:  "contact",
			desc:  "Get in touch with our support team.",
			sections: []string{
				model.SectionContactInfo,
				model.SectionContactForm,
				model.SectionMap,
			},
		},
	}

	for _, p := range pages {
		page, err := queries.CreatePage(ctx, CreatePageParams{
			Title:       p.title,
			Slug:        p.slug,
			Description: p.desc,
			MetaTitle:   p.title + " | HomeHNI",
			IsPublished: true,
		})
		if err != nil {
			return fmt.Errorf("seeding page %q: %w", p.slug, err)
		}
		for i, sectionType := range p.sections {
			_, err := queries.CreateSection(ctx, CreateSectionParams{
				PageID:      page.ID,
				SectionType: sectionType,
				Content:     catalog.FindDefaultContent(sectionType),
				SortOrder:   int64(i),
				IsActive:    true,
			})
			if err != nil {
				return fmt.Errorf("seeding %s section for %q: %w", sectionType, p.slug, err)
			}
		}
		slog.Info("seeded page", "slug", page.Slug, "sections", len(p.sections))
	}

	return nil
}

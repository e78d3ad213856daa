package catalog

import (
	"strings"

	"github.com/kalakar-academy/academy-api/internal/models"
)

// Course is a statically defined catalog entry. Fees are kept as display
// strings so the marketing copy and records stay in sync; FeeAmount
// derives the numeric value used for charging.
type Course struct {
	Title         string
	Level         string
	LocalizedName string
	Fee           string
	Duration      string
	Sessions      string
	Technique     string
	AgeGroup      string
}

var courses = []Course{
	{Title: "Little Artists Program", Level: "Level 1: Creative Foundations", LocalizedName: "नए कलाकार", Fee: "₹2,500", Duration: "1 month", Sessions: "8 sessions", Technique: "Mixed Media", AgeGroup: "kids"},
	{Title: "Young Creators Workshop", Level: "Level 2: Skill Builders", LocalizedName: "उभरते कलाकार", Fee: "₹3,500", Duration: "1.5 months", Sessions: "12 sessions", Technique: "Watercolor & Clay", AgeGroup: "kids"},
	{Title: "Junior Artist Academy", Level: "Level 3: Advanced Explorers", LocalizedName: "प्रख्यात कलाकार", Fee: "₹4,500", Duration: "2 months", Sessions: "16 sessions", Technique: "Mixed Media", AgeGroup: "kids"},
	{Title: "Teen Art Foundations", Level: "Level 1: Foundation Skills", LocalizedName: "नए कलाकार", Fee: "₹4,000", Duration: "1.5 months", Sessions: "12 sessions", Technique: "Pencil & Charcoal", AgeGroup: "teens"},
	{Title: "Intermediate Art Studio", Level: "Level 2: Technique Mastery", LocalizedName: "उभरते कलाकार", Fee: "₹5,500", Duration: "2 months", Sessions: "16 sessions", Technique: "Acrylic & Oil", AgeGroup: "teens"},
	{Title: "Pre-College Art Program", Level: "Level 3: Portfolio Preparation", LocalizedName: "प्रख्यात कलाकार", Fee: "₹8,000", Duration: "3 months", Sessions: "24 sessions", Technique: "Professional Media", AgeGroup: "teens"},
	{Title: "Beginner Adult Program", Level: "Level 1: Art Foundations", LocalizedName: "नए कलाकार", Fee: "₹6,000", Duration: "2 months", Sessions: "16 sessions", Technique: "Watercolor & Pencil", AgeGroup: "adults"},
	{Title: "Intermediate Art Workshop", Level: "Level 2: Skill Development", LocalizedName: "उभरते कलाकार", Fee: "₹7,500", Duration: "2.5 months", Sessions: "20 sessions", Technique: "Oil & Acrylic", AgeGroup: "adults"},
	{Title: "Advanced Art Mastery", Level: "Level 3: Professional Mastery", LocalizedName: "प्रख्यात कलाकार", Fee: "₹10,000", Duration: "3 months", Sessions: "24 sessions", Technique: "Professional Media", AgeGroup: "adults"},
}

// Courses returns the full catalog.
func Courses() []Course {
	out := make([]Course, len(courses))
	copy(out, courses)
	return out
}

// FindByTitle looks up a catalog entry by its exact title.
func FindByTitle(title string) (Course, bool) {
	for _, c := range courses {
		if c.Title == title {
			return c, true
		}
	}
	return Course{}, false
}

// FeeAmount parses the display fee ("₹5,500") into whole rupees.
func (c Course) FeeAmount() int64 {
	var amount int64
	for _, r := range c.Fee {
		if r >= '0' && r <= '9' {
			amount = amount*10 + int64(r-'0')
		}
	}
	return amount
}

// Snapshot copies the course definition into the immutable form stored
// on enrollment records.
func (c Course) Snapshot() models.CourseInfo {
	return models.CourseInfo{
		Title:         c.Title,
		Level:         c.Level,
		LocalizedName: c.LocalizedName,
		Fee:           c.Fee,
		Duration:      c.Duration,
		SessionCount:  c.Sessions,
		Technique:     c.Technique,
	}
}

// IsValid reports whether the course matches a catalog entry.
func (c Course) IsValid() bool {
	found, ok := FindByTitle(strings.TrimSpace(c.Title))
	return ok && found.Fee == c.Fee
}

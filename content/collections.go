package content

import "slices"

var writingEntries = []WritingEntry{
	{
		Title:       "Building Quiet Systems",
		Excerpt:     "A practical guide for reducing product noise so readers stay inside the core idea.",
		Date:        "2026-01-22",
		Kind:        KindPost,
		URL:         "/posts/quiet-systems.html",
		Tag:         "Writing",
		ReadingTime: "6 min",
	},
	{
		Title:       "Deep Work Notes for Engineers",
		Excerpt:     "Field notes on defending focus windows while still collaborating with fast-moving teams.",
		Date:        "2025-12-10",
		Kind:        KindPost,
		URL:         "/posts/deep-work-notes.html",
		Tag:         "Career",
		ReadingTime: "7 min",
	},
	{
		Title:       "Atomic Habits: What Actually Stuck",
		Excerpt:     "My takeaways after applying the book for 90 days in coding and reading habits.",
		Date:        "2025-11-15",
		Kind:        KindReview,
		URL:         "/reviews/atomic-habits-notes.html",
		Tag:         "Book Review",
		ReadingTime: "5 min",
	},
	{
		Title:       "Learning in Public Without Burning Out",
		Excerpt:     "How to share progress consistently without turning every week into a content sprint.",
		Date:        "2025-10-06",
		Kind:        KindPost,
		URL:         DraftURL,
		Tag:         "Learning",
		ReadingTime: "4 min",
	},
	{
		Title:       "Slow Productivity by Cal Newport",
		Excerpt:     "A review focused on pace, ambition, and sustainable output for software careers.",
		Date:        "2025-09-04",
		Kind:        KindReview,
		URL:         DraftURL,
		Tag:         "Book Review",
		ReadingTime: "6 min",
	},
}

var projectEntries = []ProjectEntry{
	{
		Name:    "Handbook Search",
		Summary: "Internal documentation search with semantic ranking and keyboard-first navigation.",
		Stack:   []string{"TypeScript", "Elastic", "Node"},
		Link:    "#",
		Year:    "2025",
	},
	{
		Name:    "Book Notes API",
		Summary: "A tiny API that stores highlights, tags, and review drafts from my reading workflow.",
		Stack:   []string{"TypeScript", "Fastify", "PostgreSQL"},
		Link:    "#",
		Year:    "2024",
	},
	{
		Name:    "Release Pulse",
		Summary: "Dashboard for tracking deployment lead time, rollback rate, and PR cycle health.",
		Stack:   []string{"TypeScript", "React", "Supabase"},
		Link:    "#",
		Year:    "2024",
	},
}

var experienceEntries = []ExperienceEntry{
	{
		Role:     "Senior Software Engineer",
		Company:  "Your Current Team",
		Period:   "2023 - Present",
		Location: "Remote",
		Highlights: []string{
			"Led a migration from monolith endpoints to typed service modules with measurable reliability gains.",
			"Introduced performance budgets and cut critical page payloads by more than 35%.",
			"Mentored three engineers through design docs and release planning.",
		},
	},
	{
		Role:     "Software Engineer",
		Company:  "Previous Company",
		Period:   "2020 - 2023",
		Location: "Ho Chi Minh City",
		Highlights: []string{
			"Built internal tooling that reduced support response time from hours to minutes.",
			"Owned CI pipeline hardening and lowered flaky test rate by introducing deterministic fixtures.",
		},
	},
	{
		Role:     "BSc in Computer Science",
		Company:  "Your University",
		Period:   "2016 - 2020",
		Location: "Vietnam",
		Highlights: []string{
			"Focused on distributed systems, data structures, and practical software design.",
		},
	},
}

// Writing returns a copy of the writing collection in declared order.
func Writing() []WritingEntry {
	return slices.Clone(writingEntries)
}

// Projects returns a copy of the project collection in declared order.
func Projects() []ProjectEntry {
	out := make([]ProjectEntry, len(projectEntries))
	for i, p := range projectEntries {
		p.Stack = slices.Clone(p.Stack)
		out[i] = p
	}
	return out
}

// Experience returns a copy of the experience collection in declared order.
func Experience() []ExperienceEntry {
	out := make([]ExperienceEntry, len(experienceEntries))
	for i, e := range experienceEntries {
		e.Highlights = slices.Clone(e.Highlights)
		out[i] = e
	}
	return out
}

// Published returns the non-draft writing entries, newest first.
func Published() []WritingEntry {
	var out []WritingEntry
	for _, w := range SortedByNewest(writingEntries) {
		if !w.IsDraft() {
			out = append(out, w)
		}
	}
	return out
}

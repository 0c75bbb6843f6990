// Package page derives the legacy page scalars from the host page context.
package page

import (
	"datalayer/internal/datalayer/models"
	dlstrings "datalayer/pkg/platform/strings"
)

// DefaultDateLayout renders publish dates like "March 5, 2025".
const DefaultDateLayout = "January 2, 2006"

// Legacy computes every legacy scalar key for pc. A nil context yields the
// neutral values of an unclassified page.
func Legacy(pc *models.PageContext, dateLayout string) map[string]any {
	if pc == nil {
		pc = &models.PageContext{}
	}
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}

	attributes := []string{}
	categories := []string{}
	if pc.Conditions.Singular && pc.Post != nil {
		attributes = dlstrings.Compact(pc.Post.Tags)
		categories = dlstrings.Compact(pc.Post.Categories)
	}

	authorName, authorID := "", int64(0)
	postDate, year, month, day := "", "", "", ""
	if p := pc.Post; p != nil {
		if p.Author != nil {
			authorName, authorID = p.Author.DisplayName, p.Author.ID
		}
		if p.PublishedAt != nil {
			at := *p.PublishedAt
			postDate = at.Format(dateLayout)
			year, month, day = at.Format("2006"), at.Format("01"), at.Format("02")
		}
	}

	postType, postType2 := classify(pc)

	onPage, total := 0, 0
	if c := pc.Conditions; c.Category || c.Tag || c.Tax {
		onPage, total = pc.PostCount, pc.FoundPosts
	}

	searchTerm, searchFrom, searchResults := "", "", 0
	if pc.Conditions.Search {
		searchTerm, searchFrom, searchResults = pc.SearchTerm, pc.Referer, pc.FoundPosts
	}

	return map[string]any{
		models.KeyPageTitle:         pc.Title,
		models.KeyPageAttributes:    attributes,
		models.KeyPageCategory:      categories,
		models.KeyPagePostAuthor:    authorName,
		models.KeyPagePostAuthorID:  authorID,
		models.KeyPagePostDate:      postDate,
		models.KeyPagePostDateYear:  year,
		models.KeyPagePostDateMonth: month,
		models.KeyPagePostDateDay:   day,
		models.KeyPagePostType:      postType,
		models.KeyPagePostType2:     postType2,
		models.KeyPostCountOnPage:   onPage,
		models.KeyPostCountTotal:    total,
		models.KeySiteSearchTerm:    searchTerm,
		models.KeySiteSearchFrom:    searchFrom,
		models.KeySiteSearchResults: searchResults,
	}
}

// classify returns the page type and its qualified variant. The checks run in
// a fixed precedence; a present post wins over every archive type.
func classify(pc *models.PageContext) (string, string) {
	c := pc.Conditions
	switch {
	case c.FrontPage:
		return "frontpage", "frontpage"
	case c.Home:
		return "bloghome", "bloghome"
	case pc.Post != nil:
		if pc.Post.Type == "" {
			return "", ""
		}
		return pc.Post.Type, "single-" + pc.Post.Type
	case c.Category:
		return "category", "category-" + pc.QueryVar
	case c.Tag:
		return "tag", "tag-" + pc.QueryVar
	case c.Tax:
		if pc.Taxonomy == "" {
			return "tax", "tax"
		}
		return "tax", "tax-" + pc.Taxonomy
	case c.Author:
		return "author", "author-" + pc.QueryVar
	case c.Year:
		return "year", "year-" + pc.QueryVar
	case c.Month:
		return "month", "month-" + pc.QueryVar
	case c.Day:
		return "day", "day-" + pc.QueryVar
	}
	return "", ""
}

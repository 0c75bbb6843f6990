package models

import "time"

// PageContext is what the host framework knows about the page being
// rendered. It is input only; the legacy scalars are derived from it.
type PageContext struct {
	Title      string         `json:"title"`
	Conditions PageConditions `json:"conditions"`

	// QueryVar carries the archive discriminator: category id, tag slug,
	// author id, year, month number or day, depending on Conditions.
	QueryVar string `json:"query_var"`
	Taxonomy string `json:"taxonomy"`

	// Post is the queried or current loop post, if any.
	Post *Post `json:"post"`

	PostCount  int    `json:"post_count"`
	FoundPosts int    `json:"found_posts"`
	SearchTerm string `json:"search_term"`
	Referer    string `json:"referer"`
}

// PageConditions are the page-type predicates of the host framework.
type PageConditions struct {
	FrontPage bool `json:"front_page"`
	Home      bool `json:"home"`
	Singular  bool `json:"singular"`
	Category  bool `json:"category"`
	Tag       bool `json:"tag"`
	Tax       bool `json:"tax"`
	Author    bool `json:"author"`
	Year      bool `json:"year"`
	Month     bool `json:"month"`
	Day       bool `json:"day"`
	Search    bool `json:"search"`
}

// Post describes a content item.
type Post struct {
	ID          int64      `json:"id"`
	Type        string     `json:"type"`
	Author      *Author    `json:"author"`
	PublishedAt *time.Time `json:"published_at"`
	Tags        []string   `json:"tags"`
	Categories  []string   `json:"categories"`
}

// Author of a post.
type Author struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

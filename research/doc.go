// Package research provides the external web-research collaborators
// consumed by the enrichment agent: a search-backed Researcher returning
// findings with citations, and a SiteProber that extracts observed
// digital-presence facts (title, meta description, social links, CMS hint)
// from a company website.
//
// Research findings are an advisory channel. They are returned raw with
// their sources and are never merged automatically into structured
// enrichment output; a caller who wants grounded enrichment orchestrates
// both calls and reconciles them.
package research

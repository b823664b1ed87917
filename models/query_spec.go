// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// QueryType selects how a soup query is evaluated.
type QueryType string

const (
	// QueryTypeAll returns every entry of the soup, ordered.
	QueryTypeAll QueryType = "all"
	// QueryTypeMatch evaluates a full-text match expression against the
	// full_text indexes of the soup.
	QueryTypeMatch QueryType = "match"
	// QueryTypeExact returns entries whose IndexPath value equals MatchKey.
	QueryTypeExact QueryType = "exact"
)

// Order is the sort direction of a soup query.
type Order string

const (
	OrderAscending  Order = "ascending"
	OrderDescending Order = "descending"
)

// IndexType is the kind of index maintained for a soup path.
type IndexType string

const (
	IndexTypeString   IndexType = "string"
	IndexTypeInteger  IndexType = "integer"
	IndexTypeFullText IndexType = "full_text"
)

// IndexSpec declares one indexed path of a soup.
type IndexSpec struct {
	Path string    `json:"path"`
	Type IndexType `json:"type"`
}

// QuerySpec describes a query against a soup.
//
// MatchExpression uses the full-text syntax understood by the local store:
// terms may be scoped to an indexed path with {soup:Path}:term, a trailing *
// makes a prefix match, and terms are combined with AND / OR.
type QuerySpec struct {
	QueryType       QueryType `json:"queryType"`
	MatchExpression string    `json:"smartSql,omitempty"`
	IndexPath       string    `json:"indexPath,omitempty"`
	MatchKey        string    `json:"matchKey,omitempty"`
	OrderPath       string    `json:"orderPath"`
	Order           Order     `json:"order"`
	PageSize        int       `json:"pageSize"`
}

// AllQuery builds a query returning every entry ordered by orderPath.
func AllQuery(orderPath string, order Order, pageSize int) QuerySpec {
	return QuerySpec{
		QueryType: QueryTypeAll,
		OrderPath: orderPath,
		Order:     order,
		PageSize:  pageSize,
	}
}

// MatchQuery builds a full-text query ordered by orderPath.
func MatchQuery(matchExpression, orderPath string, order Order, pageSize int) QuerySpec {
	return QuerySpec{
		QueryType:       QueryTypeMatch,
		MatchExpression: matchExpression,
		OrderPath:       orderPath,
		Order:           order,
		PageSize:        pageSize,
	}
}

// ExactQuery builds a query returning entries whose indexPath equals matchKey.
func ExactQuery(indexPath, matchKey, orderPath string, order Order, pageSize int) QuerySpec {
	return QuerySpec{
		QueryType: QueryTypeExact,
		IndexPath: indexPath,
		MatchKey:  matchKey,
		OrderPath: orderPath,
		Order:     order,
		PageSize:  pageSize,
	}
}

// Page is one page of query results in query order.
type Page struct {
	Entries   []Record `json:"currentPageOrderedEntries"`
	PageIndex int      `json:"currentPageIndex"`
	PageSize  int      `json:"pageSize"`
}

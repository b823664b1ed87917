// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-contacts-keeper/models"
)

func testSchema(t *testing.T) *soupSchema {
	t.Helper()
	s, err := newSoupSchema("contacts", contactIndexes)
	require.NoError(t, err)
	return s
}

func Test_columnName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "Id", want: "i_Id"},
		{path: "FirstName", want: "i_FirstName"},
		{path: "__local__", want: "i___local__"},
		{path: "attributes.type", want: "i_attributes_type"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, columnName(tt.path))
		})
	}
}

func Test_soupSchema_ddl(t *testing.T) {
	stmts := testSchema(t).ddl()

	require.Len(t, stmts, 6)
	assert.Contains(t, stmts[0], "CREATE TABLE IF NOT EXISTS soup_contacts")
	assert.Contains(t, stmts[0], "i_FirstName TEXT")
	assert.Contains(t, stmts[0], "i___local__ TEXT")
	assert.Contains(t, stmts[5], "CREATE VIRTUAL TABLE IF NOT EXISTS soup_contacts_fts USING fts4(i_FirstName, i_LastName)")
}

func Test_indexValue(t *testing.T) {
	assert.Nil(t, indexValue(nil, models.IndexTypeString))
	assert.Equal(t, "true", indexValue(true, models.IndexTypeString))
	assert.Equal(t, "Jane", indexValue("Jane", models.IndexTypeFullText))
	assert.Equal(t, int64(42), indexValue("42", models.IndexTypeInteger))
	assert.Equal(t, int64(7), indexValue(7.0, models.IndexTypeInteger))
	assert.Nil(t, indexValue("x", models.IndexTypeInteger))
}

func Test_valueAt_NestedPath(t *testing.T) {
	r := models.Record{"attributes": map[string]any{"type": "Contact"}}

	assert.Equal(t, "Contact", valueAt(r, "attributes.type"))
	assert.Nil(t, valueAt(r, "attributes.type.name"))
	assert.Nil(t, valueAt(r, "missing"))
}

func Test_translateMatchExpression(t *testing.T) {
	s := testSchema(t)

	got, err := translateMatchExpression(s, "{contacts:FirstName}:jane* AND {contacts:LastName}:doe*")
	require.NoError(t, err)
	assert.Equal(t, "i_FirstName:jane* AND i_LastName:doe*", got)

	_, err = translateMatchExpression(s, "")
	assert.ErrorIs(t, err, ErrInvalidQuerySpec)

	_, err = translateMatchExpression(s, "{contacts:Title}:ceo")
	assert.ErrorIs(t, err, ErrPathNotIndexed)
}

func Test_buildSoupSelectQuery_Match(t *testing.T) {
	s := testSchema(t)
	spec := models.MatchQuery("{contacts:FirstName}:ja*", models.FieldLastName, models.OrderAscending, 100)

	query, args, err := buildSoupSelectQuery(s, spec, 2)
	require.NoError(t, err)

	assert.Contains(t, query, "JOIN soup_contacts_fts ON soup_contacts_fts.docid = soup_contacts.id")
	assert.Contains(t, query, "soup_contacts_fts MATCH ?")
	assert.Contains(t, query, "ORDER BY soup_contacts.i_LastName ASC, soup_contacts.id ASC")
	assert.Contains(t, query, "LIMIT 100 OFFSET 200")
	assert.Equal(t, []any{"i_FirstName:ja*"}, args)
}

func Test_buildSoupSelectQuery_ExactAndDescending(t *testing.T) {
	s := testSchema(t)
	spec := models.ExactQuery(models.FieldLocal, "true", models.FieldFirstName, models.OrderDescending, 10)

	query, args, err := buildSoupSelectQuery(s, spec, 0)
	require.NoError(t, err)

	assert.Contains(t, query, "soup_contacts.i___local__ = ?")
	assert.Contains(t, query, "soup_contacts.i_FirstName DESC")
	assert.False(t, strings.Contains(query, "MATCH"))
	assert.Equal(t, []any{"true"}, args)
}

func Test_buildSoupDeleteQuery(t *testing.T) {
	query, args, err := buildSoupDeleteQuery(testSchema(t), []int64{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM soup_contacts WHERE id IN (?,?,?)", query)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, args)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-contacts-keeper/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		for _, line := range strings.Split(data, "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  ctrl+c: выход"))

	return b.String()
}

// contactName renders "LastName, FirstName", falling back to whichever part
// is present and finally to the record id.
func contactName(r models.Record) string {
	first := fieldOrEmpty(r, models.FieldFirstName)
	last := fieldOrEmpty(r, models.FieldLastName)

	switch {
	case first != "" && last != "":
		return fmt.Sprintf("%s, %s", last, first)
	case last != "":
		return last
	case first != "":
		return first
	case r.ID() != "":
		return r.ID()
	default:
		return "(без имени)"
	}
}

func fieldOrEmpty(r models.Record, field string) string {
	v, _ := r.String(field)
	return strings.TrimSpace(v)
}

func fieldOrDash(r models.Record, field string) string {
	if v := fieldOrEmpty(r, field); v != "" {
		return v
	}
	return "-"
}

func fitText(v string, max int) string {
	runes := []rune(v)
	if max <= 0 || len(runes) <= max {
		return v
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

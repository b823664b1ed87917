// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/MKhiriev/go-contacts-keeper/models"
)

const listNameWidth = 32

type listModel struct {
	items     []models.Record
	idx       int
	query     textinput.Model
	searching bool
	loading   bool
	syncing   bool
	spinner   spinner.Model
	status    string
}

func newListModel() listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	q := textinput.New()
	q.Placeholder = "имя или фамилия"
	q.Prompt = "/ "
	q.Width = 40

	return listModel{spinner: s, query: q, loading: true}
}

func (m listModel) current() (models.Record, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return nil, false
	}
	return m.items[m.idx], true
}

// setItems replaces the shown contacts, hiding the ones waiting for a remote
// delete, and keeps the cursor in range.
func (m *listModel) setItems(records []models.Record) {
	m.items = make([]models.Record, 0, len(records))
	for _, r := range records {
		if !r.IsLocallyDeleted() {
			m.items = append(m.items, r)
		}
	}

	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m listModel) View() string {
	header := "Контакты"
	if m.syncing {
		header += "  " + m.spinner.View()
	}

	var b strings.Builder
	if m.searching || m.query.Value() != "" {
		b.WriteString(m.query.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString("Загрузка...")
	case len(m.items) == 0:
		b.WriteString("Нет контактов")
	default:
		for i, item := range m.items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			name := fitText(contactName(item), listNameWidth)
			line := fmt.Sprintf("%s%-*s %s", cursor, listNameWidth, name, fieldOrEmpty(item, models.FieldEmail))
			if item.IsLocal() {
				line = localStyle.Render(line + " *")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}

	hotKeys := "/ поиск  n новый  s синхр.  enter открыть  v версия  q выход"
	if m.searching {
		hotKeys = "enter готово  esc сбросить поиск"
	}

	return renderPage(header, b.String(), hotKeys)
}

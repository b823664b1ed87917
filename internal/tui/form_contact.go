// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/MKhiriev/go-contacts-keeper/internal/validators"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

var recordValidator = validators.NewRecordValidator()

type formContactModel struct {
	inputs     []textinput.Model
	focus      int
	record     models.Record
	isNew      bool
	submitting bool
}

func newFormContactModel(record models.Record, isNew bool) formContactModel {
	inputs := make([]textinput.Model, len(contactFields))
	for i, f := range contactFields {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
		inputs[i].SetValue(fieldOrEmpty(record, f.name))
	}
	inputs[0].Focus()

	return formContactModel{
		inputs: inputs,
		record: record.Clone(),
		isNew:  isNew,
	}
}

func (m formContactModel) focusNext() formContactModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m formContactModel) focusPrev() formContactModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

// toRecord applies the inputs to a copy of the edited record. Empty inputs
// become nil so the remote side receives null. A contact that already
// exists remotely is flagged for the next sync up.
func (m formContactModel) toRecord() models.Record {
	r := m.record.Clone()
	for i, f := range contactFields {
		v := strings.TrimSpace(m.inputs[i].Value())
		if v == "" {
			r[f.name] = nil
			continue
		}
		r[f.name] = v
	}

	r.ClearSyncError()
	if !r.IsLocallyCreated() {
		r.MarkLocallyUpdated()
	}
	return r
}

// validEmail reports whether the typed email would be accepted by the
// server. An empty email is valid.
func (m formContactModel) validEmail(ctx context.Context) bool {
	return recordValidator.Validate(ctx, m.toRecord(), validators.FieldEmail) == nil
}

func (m formContactModel) hasName() bool {
	return strings.TrimSpace(m.inputs[0].Value()) != "" || strings.TrimSpace(m.inputs[1].Value()) != ""
}

func (m formContactModel) View() string {
	title := "Новый контакт"
	if !m.isNew {
		title = "Редактирование: " + contactName(m.record)
	}

	var b strings.Builder
	for i, f := range contactFields {
		b.WriteString(padLabel(f.label))
		b.WriteString("[")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}
	if m.submitting {
		b.WriteString("\nСохранение...")
	}

	return renderPage(title, b.String(), "esc отмена  tab следующее поле  enter сохранить")
}

func padLabel(label string) string {
	const width = 11
	n := width - len([]rune(label)) - 1
	if n < 1 {
		n = 1
	}
	return label + ":" + strings.Repeat(" ", n)
}

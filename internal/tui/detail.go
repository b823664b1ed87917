// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-contacts-keeper/models"
)

// contactField is one editable contact attribute with its label.
type contactField struct {
	name  string
	label string
}

var contactFields = []contactField{
	{models.FieldFirstName, "Имя"},
	{models.FieldLastName, "Фамилия"},
	{models.FieldTitle, "Должность"},
	{models.FieldDepartment, "Отдел"},
	{models.FieldEmail, "Email"},
	{models.FieldMobilePhone, "Мобильный"},
	{models.FieldHomePhone, "Домашний"},
}

type detailModel struct {
	record models.Record
	status string
}

func syncStateLabel(r models.Record) string {
	switch {
	case r.SyncError() != "":
		return "отклонён сервером"
	case r.IsLocallyCreated():
		return "создан локально, не отправлен"
	case r.IsLocallyUpdated():
		return "изменён локально, не отправлен"
	case r.IsLocal():
		return "есть локальные изменения"
	default:
		return "синхронизирован"
	}
}

func (m detailModel) View() string {
	var b strings.Builder
	for _, f := range contactFields {
		fmt.Fprintf(&b, "%-10s %s\n", f.label+":", fieldOrDash(m.record, f.name))
	}
	fmt.Fprintf(&b, "\n%-10s %s", "Статус:", syncStateLabel(m.record))
	if cause := m.record.SyncError(); cause != "" {
		fmt.Fprintf(&b, "\n%-10s %s", "Ошибка:", cause)
	}

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(m.status)
	}

	return renderPage(contactName(m.record), b.String(), "e редакт.  d удалить  c копир. email  p копир. телефон  esc назад")
}

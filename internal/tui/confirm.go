// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

type confirmModel struct {
	message string
}

func (m confirmModel) View() string {
	content := "Удалить контакт \"" + m.message + "\"?\n\n"
	content += "y да    n нет"
	return overlayBoxStyle.Render(content)
}

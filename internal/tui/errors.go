// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-contacts-keeper/internal/service"
)

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или сервер недоступен"
	}

	return err.Error()
}

// humanizeSyncError turns a refresh failure into a message for the user.
func humanizeSyncError(err error) string {
	switch {
	case errors.Is(err, service.ErrNoSyncDown):
		return "Контакты ещё не загружены с сервера"
	case errors.Is(err, service.ErrHashMismatch):
		return "Сервер отклонил изменения: контрольная сумма не совпала"
	case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return "Сервер отклонил учётные данные клиента"
	default:
		return humanizeServerUnavailableError(err)
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, h.metrics.middleware, withGZip)

	router.Handle("/metrics", h.metrics.handler())

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/token", h.issueToken)
		r.Get("/api/version/", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/records/{object}/query", h.queryRecords)
		r.With(h.checkHash).Post("/api/records/{object}", h.createRecord)
		r.With(h.checkHash).Put("/api/records/{object}/{id}", h.updateRecord)
		r.Delete("/api/records/{object}/{id}", h.deleteRecord)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

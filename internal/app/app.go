// Package app bundles what a client front end needs: the data-access façade,
// the auth service and the session manager.
package app

import (
	"context"
	"fmt"
	"hostel/infras/otel"
	"hostel/internal/db"
	authService "hostel/internal/domains/auth/service"
	"hostel/internal/session"
)

type App struct {
	DB      *db.DB
	Auth    authService.Auth
	Session *session.Manager
	otel    otel.Otel
}

func New(database *db.DB, auth authService.Auth, sess *session.Manager, ot otel.Otel) *App {
	return &App{
		DB:      database,
		Auth:    auth,
		Session: sess,
		otel:    ot,
	}
}

// Start resumes the previous session, if any, and begins following auth changes.
func (a *App) Start(ctx context.Context) {
	a.Session.Start(ctx)
}

// Shutdown stops the session manager and flushes pending spans.
func (a *App) Shutdown(ctx context.Context) error {
	a.Session.Close()

	if err := a.otel.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down tracer: %w", err)
	}

	return nil
}

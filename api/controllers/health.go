package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/brightlaunch/academy-cms-backend/api/responses"
	"github.com/brightlaunch/academy-cms-backend/pkg/config"
	"github.com/brightlaunch/academy-cms-backend/pkg/logger"
)

const envHeader = "X-AcademyCMS-Env"

const readyProbeTimeout = 5 * time.Second

// Pinger is the health-check surface each backing dependency exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings each backing dependency and reports per-dependency state.
// Any failure flips the response to 503 so load balancers stop routing here.
func HealthReady(cfg *config.Config, logg *logger.Logger, db, redis, storage Pinger) http.HandlerFunc {
	deps := map[string]Pinger{
		"database": db,
		"redis":    redis,
		"storage":  storage,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyProbeTimeout)
		defer cancel()

		statuses := make(map[string]string, len(deps))
		ready := true
		for name, dep := range deps {
			if dep == nil {
				statuses[name] = "not configured"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				statuses[name] = "unavailable"
				ready = false
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "readiness probe failed", err)
				}
				continue
			}
			statuses[name] = "ok"
		}

		payload := map[string]any{
			"status":       "ready",
			"dependencies": statuses,
		}
		if !ready {
			payload["status"] = "degraded"
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, payload)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}

package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"delivery-relay/internal/cache"
	"delivery-relay/internal/config"
	"delivery-relay/internal/gateway/backend"
	"delivery-relay/internal/logx"
	"delivery-relay/internal/service/availability"
	"delivery-relay/internal/service/tariff"
)

type statusUpdaterIn struct {
	dig.In
	Config  *config.Config
	Client  *backend.Client
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

type tariffIn struct {
	dig.In
	Config    *config.Config
	Client    *backend.Client
	Logger    logx.Logger
	Fallbacks prometheus.Counter `name:"tariff_quote_fallbacks_total"`
}

type availabilityIn struct {
	dig.In
	Config   *config.Config
	Client   *backend.Client
	Store    cache.Store
	Logger   logx.Logger
	Outcomes *prometheus.CounterVec `name:"courier_availability_outcomes_total"`
}

type dispatchIn struct {
	dig.In
	Client       *backend.Client
	Availability *availability.Service
	Tariff       *tariff.Service
	Store        cache.Store
	Logger       logx.Logger
	Degraded     prometheus.Counter `name:"assignment_degraded_pools_total"`
}

type lifecycleIn struct {
	dig.In
	Config   *config.Config
	Client   *backend.Client
	Statuses *backend.RetryingStatusUpdater
	Store    cache.Store
	Logger   logx.Logger
	Actions  *prometheus.CounterVec `name:"delivery_lifecycle_actions_total"`
}

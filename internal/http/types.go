package http

import (
	"net/http"

	"github.com/mauv0809/pickup-tracker/internal/club"
	"github.com/mauv0809/pickup-tracker/internal/config"
	"github.com/mauv0809/pickup-tracker/internal/match"
	"github.com/mauv0809/pickup-tracker/internal/metrics"
	"github.com/mauv0809/pickup-tracker/internal/notifier"
	"github.com/mauv0809/pickup-tracker/internal/pubsub"
)

type Server struct {
	Store          club.Store
	Controller     *match.Controller
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

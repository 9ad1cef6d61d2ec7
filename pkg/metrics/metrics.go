// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

// Package metrics provides Prometheus instrumentation for the identity
// client: request outcomes, token refreshes, single-call retries, and
// WebAuthn ceremony results.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all identity client metrics
	Namespace = "identity_client"

	// Label names
	LabelMethod     = "method"
	LabelStatusCode = "status_code"
	LabelStatus     = "status"
	LabelFlow       = "flow"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Ceremony flow names
	FlowRegistration   = "registration"
	FlowAuthentication = "authentication"
)

var (
	// RequestsTotal tracks completed HTTP calls by method and status code.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "requests_total",
			Help:      "Total number of HTTP calls by method and status code",
		},
		[]string{LabelMethod, LabelStatusCode},
	)

	// TokenRefreshesTotal tracks access token refresh attempts by outcome.
	// At most one refresh is in flight at any time, so this also counts
	// refresh cycles.
	TokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "token_refreshes_total",
			Help:      "Total number of access token refresh attempts by outcome",
		},
		[]string{LabelStatus},
	)

	// RetriesTotal tracks calls replayed after a successful token refresh.
	RetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "retries_total",
			Help:      "Total number of calls replayed after a token refresh",
		},
	)

	// CeremoniesTotal tracks WebAuthn ceremonies by flow and outcome.
	CeremoniesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ceremonies_total",
			Help:      "Total number of WebAuthn ceremonies by flow and outcome",
		},
		[]string{LabelFlow, LabelStatus},
	)
)

// RecordRequest records a completed HTTP call.
func RecordRequest(method, statusCode string) {
	RequestsTotal.WithLabelValues(method, statusCode).Inc()
}

// RecordRefresh records a token refresh attempt.
func RecordRefresh(success bool) {
	if success {
		TokenRefreshesTotal.WithLabelValues(StatusSuccess).Inc()
		return
	}
	TokenRefreshesTotal.WithLabelValues(StatusError).Inc()
}

// RecordRetry records a call replayed after a successful refresh.
func RecordRetry() {
	RetriesTotal.Inc()
}

// RecordCeremony records a WebAuthn ceremony outcome.
func RecordCeremony(flow string, success bool) {
	if success {
		CeremoniesTotal.WithLabelValues(flow, StatusSuccess).Inc()
		return
	}
	CeremoniesTotal.WithLabelValues(flow, StatusError).Inc()
}

// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "200"))
	RecordRequest("GET", "200")
	after := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordRefresh(t *testing.T) {
	beforeOK := testutil.ToFloat64(TokenRefreshesTotal.WithLabelValues(StatusSuccess))
	beforeErr := testutil.ToFloat64(TokenRefreshesTotal.WithLabelValues(StatusError))

	RecordRefresh(true)
	RecordRefresh(false)

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(TokenRefreshesTotal.WithLabelValues(StatusSuccess)))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(TokenRefreshesTotal.WithLabelValues(StatusError)))
}

func TestRecordRetry(t *testing.T) {
	before := testutil.ToFloat64(RetriesTotal)
	RecordRetry()
	assert.Equal(t, before+1, testutil.ToFloat64(RetriesTotal))
}

func TestRecordCeremony(t *testing.T) {
	before := testutil.ToFloat64(CeremoniesTotal.WithLabelValues(FlowRegistration, StatusSuccess))
	RecordCeremony(FlowRegistration, true)
	assert.Equal(t, before+1, testutil.ToFloat64(CeremoniesTotal.WithLabelValues(FlowRegistration, StatusSuccess)))

	beforeErr := testutil.ToFloat64(CeremoniesTotal.WithLabelValues(FlowAuthentication, StatusError))
	RecordCeremony(FlowAuthentication, false)
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(CeremoniesTotal.WithLabelValues(FlowAuthentication, StatusError)))
}

// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package datauri

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsEncoder holds Prometheus metrics for the conversion pipeline.
type metricsEncoder struct {
	once sync.Once

	// Per input
	encodes      *prometheus.CounterVec
	errors       *prometheus.CounterVec
	bytesEncoded prometheus.Counter

	// Remote phases
	remoteRequests *prometheus.CounterVec

	// Batches
	groups prometheus.Counter

	// Durations
	encodeDuration *prometheus.HistogramVec
}

var encMetrics metricsEncoder

func (m *metricsEncoder) init() {
	m.once.Do(func() {
		m.encodes = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "datauri_encodes_total", Help: "Inputs processed, by source and outcome"}, []string{"source", "outcome"})
		m.errors = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "datauri_errors_total", Help: "Failed inputs, by error kind"}, []string{"kind"})
		m.bytesEncoded = prometheus.NewCounter(prometheus.CounterOpts{Name: "datauri_bytes_encoded_total", Help: "Payload bytes turned into data URIs"})

		m.remoteRequests = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "datauri_remote_requests_total", Help: "Remote requests, by phase and status class"}, []string{"phase", "status"})

		m.groups = prometheus.NewCounter(prometheus.CounterOpts{Name: "datauri_groups_total", Help: "Batch groups dispatched"})

		buckets := []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20}
		m.encodeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "datauri_encode_seconds", Help: "Time to resolve and encode one input", Buckets: buckets}, []string{"source"})

		prometheus.MustRegister(
			m.encodes, m.errors, m.bytesEncoded,
			m.remoteRequests,
			m.groups,
			m.encodeDuration,
		)
	})
}

func recordEncode(source SourceKind, size int, err error, d time.Duration) {
	encMetrics.init()
	outcome := "ok"
	if err != nil {
		outcome = "error"
		encMetrics.errors.WithLabelValues(KindOf(err).String()).Inc()
	} else {
		encMetrics.bytesEncoded.Add(float64(size))
	}
	encMetrics.encodes.WithLabelValues(source.String(), outcome).Inc()
	encMetrics.encodeDuration.WithLabelValues(source.String()).Observe(d.Seconds())
}

func recordRemote(phase string, status int, err error) {
	encMetrics.init()
	encMetrics.remoteRequests.WithLabelValues(phase, statusClass(status, err)).Inc()
}

func recordGroup() { encMetrics.init(); encMetrics.groups.Inc() }

func statusClass(status int, err error) string {
	switch {
	case err != nil && KindOf(err) == KindTimeout:
		return "timeout"
	case err != nil:
		return "error"
	default:
		return fmt.Sprintf("%dxx", status/100)
	}
}

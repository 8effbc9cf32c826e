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

package main

import (
	"bytes"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/kraklabs/datauri/pkg/datauri"
)

func TestNewProgressConfig(t *testing.T) {
	tests := []struct {
		name            string
		globals         GlobalFlags
		expectedNoColor bool
	}{
		{name: "default flags", globals: GlobalFlags{}},
		{name: "quiet mode", globals: GlobalFlags{Quiet: true}},
		{name: "JSON mode", globals: GlobalFlags{JSON: true, Quiet: true}},
		{name: "noColor flag propagates", globals: GlobalFlags{NoColor: true}, expectedNoColor: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewProgressConfig(tt.globals)
			// stderr is not a TTY under go test
			if cfg.Enabled {
				t.Error("NewProgressConfig().Enabled = true, want false")
			}
			if cfg.NoColor != tt.expectedNoColor {
				t.Errorf("NewProgressConfig().NoColor = %v, want %v", cfg.NoColor, tt.expectedNoColor)
			}
			if cfg.Writer != os.Stderr {
				t.Error("NewProgressConfig().Writer should be os.Stderr")
			}
		})
	}
}

func TestNewProgressBar(t *testing.T) {
	if bar := NewProgressBar(ProgressConfig{Enabled: false}, 10, "Encoding"); bar != nil {
		t.Error("NewProgressBar() should return nil when disabled")
	}

	var buf bytes.Buffer
	bar := NewProgressBar(ProgressConfig{Enabled: true, Writer: &buf, NoColor: true}, 10, "Encoding")
	if bar == nil {
		t.Fatal("NewProgressBar() should return non-nil when enabled")
	}
	_ = bar.Set(5)
	_ = bar.Finish()
}

func TestSettleTracker(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(ProgressConfig{Enabled: true, Writer: &buf, NoColor: true}, 20, "Encoding")
	tracker := newSettleTracker(bar)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := datauri.Result{Data: "data:image/png;base64,"}
			if i%4 == 0 {
				res = datauri.Result{Err: errors.New("boom")}
			}
			tracker.OnSettled("x", res)
		}()
	}
	wg.Wait()

	if got := bar.State().CurrentNum; got != 20 {
		t.Errorf("bar position = %d, want 20", got)
	}
	if tracker.failed != 5 {
		t.Errorf("failed = %d, want 5", tracker.failed)
	}
	tracker.Finish()
}

func TestSettleTracker_NilBar(t *testing.T) {
	tracker := newSettleTracker(nil)
	tracker.OnSettled("x", datauri.Result{Err: errors.New("boom")})
	tracker.Finish()
	if tracker.failed != 1 {
		t.Errorf("failed = %d, want 1", tracker.failed)
	}
}

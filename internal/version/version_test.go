// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name                  string
		version, commit, when string
		want                  Info
	}{
		{
			name:    "injected",
			version: "v1.0.0", commit: "abc1234", when: "2025-01-30T12:00:00Z",
			want: Info{Version: "v1.0.0", GitCommit: "abc1234", BuildTime: "2025-01-30T12:00:00Z"},
		},
		{
			name: "not injected",
			want: Info{Version: "dev", GitCommit: "unknown", BuildTime: "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.version, tt.commit, tt.when); got != tt.want {
				t.Errorf("New() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	got := New("v1.2.3", "abc1234", "2025-01-30T12:00:00Z").String()
	want := "gov-portal v1.2.3 (commit: abc1234, built: 2025-01-30T12:00:00Z)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

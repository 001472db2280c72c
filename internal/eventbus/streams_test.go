package eventbus

import (
	"strings"
	"testing"
)

func TestStreamNameForTopic(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{
			name:  "stat log topic",
			topic: "statlog.stat.recorded.v1",
			want:  "statlog",
		},
		{
			name:  "match topic",
			topic: "match.unlocked.v1",
			want:  "match",
		},
		{
			name:  "live stats topic",
			topic: "livestats.snapshot.updated.v1",
			want:  "livestats",
		},
		{
			name:  "single segment topic",
			topic: "heartbeat",
			want:  "heartbeat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StreamNameForTopic(tt.topic)
			if got != tt.want {
				t.Errorf("StreamNameForTopic(%q) = %q, want %q", tt.topic, got, tt.want)
			}

			// The stream subscribes to "<name>.>", which is case-sensitive.
			// The derived name must make the stream own the topic it came from.
			owns := tt.topic == got || strings.HasPrefix(tt.topic, got+".")
			if !owns {
				t.Errorf("stream %q (subjects %q) would not own topic %q", got, got+".>", tt.topic)
			}
		})
	}
}

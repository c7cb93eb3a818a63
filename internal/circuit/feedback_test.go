package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/gategrid/internal/gate"
	"github.com/vk/gategrid/internal/model"
)

func TestFeedbackGates(t *testing.T) {
	testCases := []struct {
		name  string
		gates []model.Gate
		wires []model.Wire
		want  []string
	}{
		{
			name:  "acyclic",
			gates: []model.Gate{g("A", gate.TagSource), g("B", gate.TagNot), g("C", gate.TagSink)},
			wires: []model.Wire{w("1", "A", 0, "B", 0), w("2", "B", 0, "C", 0)},
			want:  nil,
		},
		{
			name:  "self loop",
			gates: []model.Gate{g("A", gate.TagSource), g("Y", gate.TagNot)},
			wires: []model.Wire{w("loop", "Y", 0, "Y", 0)},
			want:  []string{"Y"},
		},
		{
			name:  "two gate loop with a tail",
			gates: []model.Gate{g("S", gate.TagSource), g("X", gate.TagOr), g("Y", gate.TagNot), g("Z", gate.TagSink)},
			wires: []model.Wire{
				w("s", "S", 0, "X", 0),
				w("xy", "X", 0, "Y", 0),
				w("yx", "Y", 0, "X", 1),
			},
			want: []string{"X", "Y"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FeedbackGates(mustBuild(t, tc.gates, tc.wires)))
		})
	}
}

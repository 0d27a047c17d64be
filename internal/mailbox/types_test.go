package mailbox

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_Departed(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{"sentinel", Sentinel, true},
		{"negative x only", Position{X: -1, Y: 5}, true},
		{"negative y only", Position{X: 5, Y: -1}, true},
		{"origin", Position{}, false},
		{"active", Position{X: 10, Y: 30}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.Departed())
		})
	}
}

func TestPosition_InArena(t *testing.T) {
	assert.True(t, Position{X: 1, Y: 1}.InArena())
	assert.True(t, Position{X: 30, Y: 30}.InArena())
	assert.True(t, Position{X: 15, Y: 2}.InArena())
	assert.False(t, Position{X: 0, Y: 5}.InArena())
	assert.False(t, Position{X: 5, Y: 31}.InArena())
	assert.False(t, Sentinel.InArena())
}

func TestInRange(t *testing.T) {
	for v := ArenaMin; v <= ArenaMax; v++ {
		assert.True(t, InRange(v), "InRange(%d)", v)
	}
	for _, v := range []int{-5, -1, 0, 31, 100} {
		assert.False(t, InRange(v), "InRange(%d)", v)
	}
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "(5,7)", Position{X: 5, Y: 7}.String())
	assert.Equal(t, "(-1,-1)", Sentinel.String())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "robot0.txt", Label(".", 0))
	assert.Equal(t, filepath.Join("/tmp/swarm", "robot3.txt"), Label("/tmp/swarm", 3))

	labels := Labels("run", 3)
	assert.Equal(t, []string{
		filepath.Join("run", "robot0.txt"),
		filepath.Join("run", "robot1.txt"),
		filepath.Join("run", "robot2.txt"),
	}, labels)
}

package generator

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindFlagsReachConfig(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)

	require.NoError(t, fs.Parse([]string{
		"--adjacency-buffer=1.25",
		"--straight-tolerance=0.75",
		"--segment-overlap-reject=0.3",
		"--door-spacing=2",
		"--min-spawn-area=64",
		"--fill-tries=4",
		"--cap-boss=3",
	}))

	assert.Equal(t, 1.25, cfg.AdjacencyBuffer)
	assert.Equal(t, 0.75, cfg.StraightTolerance)
	assert.Equal(t, 0.3, cfg.SegmentOverlapReject)
	assert.Equal(t, 2.0, cfg.DoorSpacingFactor)
	assert.Equal(t, 64.0, cfg.MinSpawnArea)
	assert.Equal(t, 4, cfg.FillTries)
	assert.Equal(t, 3, cfg.Caps.Boss)
	assert.Equal(t, DefaultConfig().CorridorWidth, cfg.CorridorWidth, "unset flags keep defaults")
	require.NoError(t, cfg.Validate())
}

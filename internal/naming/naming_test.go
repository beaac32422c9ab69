package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framestamp/framestamp/internal/runner"
)

func testRules() Rules {
	return Rules{
		"landscape": {FilenamePrefix: "hd_", Tag: "1920x1080"},
		"portrait":  {FilenamePrefix: "cover_", Tag: "500x750"},
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		cell runner.RenderCell
		ext  string
		want string
	}{
		{
			"strips source extension",
			runner.RenderCell{ItemID: "episode01.png", SpecKey: "landscape"},
			"jpg",
			"hd_episode01_1920x1080.jpg",
		},
		{
			"portrait rule",
			runner.RenderCell{ItemID: "episode01.png", SpecKey: "portrait"},
			"jpg",
			"cover_episode01_500x750.jpg",
		},
		{
			"no extension on source",
			runner.RenderCell{ItemID: "frame", SpecKey: "landscape"},
			"png",
			"hd_frame_1920x1080.png",
		},
		{
			"directory components dropped",
			runner.RenderCell{ItemID: "shots/ep2.jpeg", SpecKey: "portrait"},
			"jpg",
			"cover_ep2_500x750.jpg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FileName(&tt.cell, testRules(), tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileName_UnknownSpecKey(t *testing.T) {
	cell := runner.RenderCell{ItemID: "a.png", SpecKey: "square"}
	_, err := FileName(&cell, testRules(), "jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "square")
}

func TestFileName_Deterministic(t *testing.T) {
	cell := runner.RenderCell{ItemID: "ep.png", SpecKey: "landscape"}
	a, err := FileName(&cell, testRules(), "jpg")
	require.NoError(t, err)
	b, err := FileName(&cell, testRules(), "jpg")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

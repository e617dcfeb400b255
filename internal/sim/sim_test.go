package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luki/simbridge/internal/extract"
	"github.com/luki/simbridge/internal/uitree"
	"github.com/luki/simbridge/internal/uitree/faketree"
)

func flowsheet() *faketree.Node {
	return faketree.New("Flowsheet",
		faketree.New("Stream Conditions",
			faketree.New("85.30"),
		),
		faketree.New("Input Data",
			faketree.New("23.10"),
		),
	)
}

func TestReaderCollect(t *testing.T) {
	r := NewReader(extract.DefaultConfig(), flowsheet())

	cands, err := r.Collect()
	require.NoError(t, err)
	assert.Len(t, cands, 2)
	assert.True(t, r.Connected())
}

func TestReaderConnectionLost(t *testing.T) {
	root := flowsheet()
	r := NewReader(extract.DefaultConfig(), root)

	root.FailChildren = true
	_, err := r.Collect()
	assert.ErrorIs(t, err, ErrConnectionLost)
	assert.False(t, r.Connected())

	// Once lost, collection keeps failing until a reconnect.
	_, err = r.Collect()
	assert.ErrorIs(t, err, ErrConnectionLost)
}

func TestReaderReconnect(t *testing.T) {
	root := flowsheet()
	r := NewReader(extract.DefaultConfig(), root)
	root.FailChildren = true
	_, _ = r.Collect()
	require.False(t, r.Connected())

	fresh := flowsheet()
	err := r.Reconnect(func() (uitree.Element, error) { return fresh, nil })
	require.NoError(t, err)
	assert.True(t, r.Connected())

	cands, err := r.Collect()
	require.NoError(t, err)
	assert.Len(t, cands, 2)
}

func TestWriterWriteTemperature(t *testing.T) {
	field := faketree.New("")
	field.AutoID = "tbTemp"
	panel := faketree.New("Air_In (Material Stream)", field)
	root := faketree.New("Flowsheet", panel)

	w := NewWriter(root, "Air_In (Material Stream)", "tbTemp")
	require.NoError(t, w.WriteTemperature(27.3))

	assert.Equal(t, []string{"27.30"}, field.Edited)
	assert.True(t, panel.Focused)
}

func TestWriterPanelMissing(t *testing.T) {
	root := faketree.New("Flowsheet")
	w := NewWriter(root, "Air_In (Material Stream)", "tbTemp")
	assert.Error(t, w.WriteTemperature(27.0))
}

func TestWriterControlMissing(t *testing.T) {
	panel := faketree.New("Air_In (Material Stream)")
	root := faketree.New("Flowsheet", panel)
	w := NewWriter(root, "Air_In (Material Stream)", "tbTemp")
	assert.Error(t, w.WriteTemperature(27.0))
}

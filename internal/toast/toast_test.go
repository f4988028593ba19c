package toast

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole(t *testing.T) {
	var buf bytes.Buffer

	c := NewConsole(&buf)
	c.PresentToast("Please do not select past time.")
	c.PresentError(errors.New("boom"))
	c.PresentError(nil)

	assert.Equal(t, "Please do not select past time.\nerror: boom\n", buf.String())
}

func TestCollector(t *testing.T) {
	c := NewCollector(2)
	c.PresentToast("a")
	c.PresentToast("b")
	c.PresentError(errors.New("c"))

	msgs := c.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "b", msgs[0].Text)
	assert.Equal(t, LevelError, msgs[1].Level)
}

func TestMulti(t *testing.T) {
	a, b := NewCollector(5), NewCollector(5)

	Multi{a, b}.PresentToast("x")

	assert.Len(t, a.Messages(), 1)
	assert.Len(t, b.Messages(), 1)
}

func TestPresented(t *testing.T) {
	e := errors.New("x")
	err := Presented(e)

	assert.True(t, IsPresented(err))
	assert.ErrorIs(t, err, e)
	assert.False(t, IsPresented(e))
	assert.NoError(t, Presented(nil))
}

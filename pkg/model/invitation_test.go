package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryPath(t *testing.T) {
	for c, p := range map[Category]string{
		CategorySent:     "/invitation/waiting/",
		CategoryReceived: "/invitation/pending/",
		CategoryAccepted: "/invitation/upcoming/",
	} {
		path, err := c.Path()
		require.NoError(t, err)
		assert.Equal(t, p, path)
	}

	_, err := Category("declined").Path()
	require.ErrorIs(t, err, ErrUnknownCategory)

	_, err = ParseCategory("")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCounterpart(t *testing.T) {
	var ivt Invitation
	require.NoError(t, json.Unmarshal([]byte(`{"senderId":1,"receiverId":"2","sName":"ann","rName":"ben","invitationId":9}`), &ivt))

	assert.Equal(t, "9", ivt.InvitationID.String())
	assert.Equal(t, "2", ivt.CounterpartID("1"))
	assert.Equal(t, "ben", ivt.CounterpartName("1"))
	assert.Equal(t, "1", ivt.CounterpartID("2"))
	assert.Equal(t, "ann", ivt.CounterpartName("2"))
}

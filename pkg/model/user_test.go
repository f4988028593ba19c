package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlags(t *testing.T) {
	assert.True(t, FlagValue("T"))
	assert.False(t, FlagValue("F"))
	assert.False(t, FlagValue("t"))
	assert.False(t, FlagValue(""))
	assert.False(t, FlagValue("true"))

	assert.Equal(t, "T", FlagString(true))
	assert.Equal(t, "F", FlagString(false))
}

func TestApplyProfile(t *testing.T) {
	data := `{"username":"bob","description":"hungry","email":"bob@example.com",
		"availability":"T","shared_gps":"N","year":2019,"major":"CS","gender":"M","age":"21","college":"Trinity"}`

	var p ProfileDTO
	require.NoError(t, json.Unmarshal([]byte(data), &p))

	u := &User{ID: "42", Latitude: 1, Longitude: 2}
	u.ApplyProfile(&p)

	assert.Equal(t, "42", u.ID)
	assert.Equal(t, "bob", u.Username)
	assert.True(t, u.Availability)
	assert.False(t, u.ShareGPS)
	assert.Equal(t, "2019", u.YearOfEntry)
	assert.Equal(t, "21", u.Age)
	assert.Equal(t, "Trinity", u.College)
	assert.Equal(t, 1.0, u.Latitude)
}

func TestUserFromProfile(t *testing.T) {
	u := UserFromProfile("7", &ProfileDTO{Username: "amy", SharedGPS: "T"})
	assert.Equal(t, "7", u.ID)
	assert.True(t, u.ShareGPS)

	u = UserFromProfile("7", &ProfileDTO{ID: "8"})
	assert.Equal(t, "8", u.ID)
}

func TestFlexString(t *testing.T) {
	var v struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a":12,"b":"x","c":null}`), &v))
	assert.Equal(t, "12", v.A.String())
	assert.Equal(t, "x", v.B.String())
	assert.Empty(t, v.C)

	require.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}

func TestParams(t *testing.T) {
	u := &User{ID: "1", Username: "bob", Availability: true, YearOfEntry: "2020"}
	p := u.Params()

	assert.Equal(t, "1", p["id"])
	assert.Equal(t, "T", p["availability"])
	assert.Equal(t, "F", p["shared_gps"])
	assert.Equal(t, "2020", p["year"])
}

func TestSession(t *testing.T) {
	s := NewSession()
	s.SetID("5")
	s.Update(func(u *User) { u.Username = "eve" })

	assert.Equal(t, "5", s.ID())
	assert.Equal(t, "eve", s.User().Username)

	s.Clean()
	assert.Empty(t, s.ID())
	assert.Empty(t, s.User().Username)
}

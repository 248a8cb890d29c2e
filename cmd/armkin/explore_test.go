package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/armkin/pkg/kinematics"
	"github.com/gwillem/armkin/pkg/robot"
)

func newTestExplore(t *testing.T) exploreModel {
	t.Helper()
	solver, err := robot.DefaultConfig().Solver()
	require.NoError(t, err)
	m, err := newExploreModel(solver, kinematics.DefaultSelector, 10, 5)
	require.NoError(t, err)
	return m
}

func press(m exploreModel, key string) exploreModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return next.(exploreModel)
}

func TestExploreStartsSolved(t *testing.T) {
	m := newTestExplore(t)
	require.NoError(t, m.err)
	require.Len(t, m.angles, 6)

	pose, err := kinematics.ForwardPose(m.angles, m.solver.Geometry())
	require.NoError(t, err)
	assert.InDelta(t, m.position.X, pose.Position.X, 1e-6)
	assert.InDelta(t, m.position.Y, pose.Position.Y, 1e-6)
	assert.InDelta(t, m.position.Z, pose.Position.Z, 1e-6)
}

func TestExploreKeys(t *testing.T) {
	m := newTestExplore(t)
	start := m.position

	m = press(m, "x")
	assert.InDelta(t, start.X+10, m.position.X, 1e-9)
	assert.NoError(t, m.err)

	m = press(m, "Z")
	assert.InDelta(t, start.Z-10, m.position.Z, 1e-9)

	beta := m.euler[1]
	m = press(m, "b")
	assert.InDelta(t, beta+5, m.euler[1], 1e-9)

	m = press(m, "2")
	assert.Equal(t, -1, m.selector.Elbow)

	m = press(m, "r")
	assert.Equal(t, start, m.position)
	assert.Equal(t, -1, m.selector.Elbow, "reset keeps the branch")
}

func TestExploreUnreachable(t *testing.T) {
	m := newTestExplore(t)
	for range 200 {
		m = press(m, "z")
	}
	require.Error(t, m.err)
	assert.ErrorIs(t, m.err, kinematics.ErrUnreachable)
	assert.Contains(t, describeSolveError(m.err), "Out of reach")
	assert.Contains(t, m.View(), "Out of reach")
}

func TestExploreQuit(t *testing.T) {
	m := newTestExplore(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd)
	assert.True(t, next.(exploreModel).quitting)
	assert.Empty(t, next.(exploreModel).View())
}

func TestParseDegrees(t *testing.T) {
	deg, err := parseDegrees("10, -20,30.5,0,0,90")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, -20, 30.5, 0, 0, 90}, deg)

	_, err = parseDegrees("10,abc")
	assert.Error(t, err)
}

func TestSolveSelector(t *testing.T) {
	c := SolveCommand{Elbow: -1}
	sel := c.selector(kinematics.DefaultSelector)
	assert.Equal(t, kinematics.Selector{Arm: 1, Elbow: -1, Hand: 1}, sel)

	c = SolveCommand{}
	assert.Equal(t, kinematics.DefaultSelector, c.selector(kinematics.DefaultSelector))
}

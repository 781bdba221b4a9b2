package veth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/vethctl/shared/subprocess"
)

// fakeRunner records the commands it's asked to run.
type fakeRunner struct {
	calls []subprocess.Cmd

	// results is consumed in order, missing entries mean success.
	results []error

	// stdout is written to the command stdout when set.
	stdout string
}

func (r *fakeRunner) Run(ctx context.Context, cmd subprocess.Cmd) error {
	r.calls = append(r.calls, cmd)

	if r.stdout != "" && cmd.Stdout != nil {
		_, _ = io.WriteString(cmd.Stdout, r.stdout)
	}

	if len(r.results) == 0 {
		return nil
	}

	err := r.results[0]
	r.results = r.results[1:]

	return err
}

// sink counts how often it's opened and closed.
type sink struct {
	opened int
	closed int
	err    error
}

func (s *sink) open() (io.WriteCloser, error) {
	s.opened++
	if s.err != nil {
		return nil, s.err
	}

	return s, nil
}

func (s *sink) Write(p []byte) (int, error) {
	return len(p), nil
}

func (s *sink) Close() error {
	s.closed++
	return nil
}

func newTestManager(runner *fakeRunner, s *sink) *Manager {
	m := NewManager(runner)
	m.OpenDiscard = s.open

	return m
}

func exitError(code int) error {
	return subprocess.NewRunError("ip", nil, fmt.Errorf("exit status %d", code), code, "Device does not exist.")
}

func TestManager_Create(t *testing.T) {
	runner := &fakeRunner{}
	m := newTestManager(runner, &sink{})

	err := m.Create(context.Background(), "veth1", "temp_name")
	require.NoError(t, err)

	require.Len(t, runner.calls, 2)

	assert.Equal(t, "ip", runner.calls[0].Name)
	assert.Equal(t, []string{"link", "add", "veth1", "type", "veth", "peer", "name", "temp_name"}, runner.calls[0].Args)
	assert.Equal(t, IPCmdTimeout, runner.calls[0].Timeout)

	assert.Equal(t, "ip", runner.calls[1].Name)
	assert.Equal(t, []string{"link", "set", "veth1", "up"}, runner.calls[1].Args)
	assert.Equal(t, IPCmdTimeout, runner.calls[1].Timeout)

	// Output is inherited.
	for _, call := range runner.calls {
		assert.Nil(t, call.Stdout)
		assert.Nil(t, call.Stderr)
	}
}

func TestManager_Create_AddFails(t *testing.T) {
	runner := &fakeRunner{results: []error{exitError(2)}}
	m := newTestManager(runner, &sink{})

	err := m.Create(context.Background(), "veth1", "temp_name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Failed to create the veth interfaces "veth1" and "temp_name"`)
	assert.True(t, subprocess.IsExitError(err))

	// The link isn't brought up.
	assert.Len(t, runner.calls, 1)
}

func TestManager_Create_SetUpFails(t *testing.T) {
	runner := &fakeRunner{results: []error{nil, exitError(1)}}
	m := newTestManager(runner, &sink{})

	err := m.Create(context.Background(), "veth1", "temp_name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Failed to bring up interface "veth1"`)

	// No cleanup of the pair.
	assert.Len(t, runner.calls, 2)
}

func TestManager_Create_Timeout(t *testing.T) {
	timeout := subprocess.NewRunError("ip", nil, subprocess.ErrTimeout, -1, "")
	runner := &fakeRunner{results: []error{timeout}}
	m := newTestManager(runner, &sink{})

	err := m.Create(context.Background(), "veth1", "temp_name")
	require.Error(t, err)
	assert.True(t, errors.Is(err, subprocess.ErrTimeout))
}

func TestManager_Remove(t *testing.T) {
	runner := &fakeRunner{}
	s := &sink{}
	m := newTestManager(runner, s)

	removed, err := m.Remove(context.Background(), "veth1")
	require.NoError(t, err)
	assert.True(t, removed)

	require.Len(t, runner.calls, 2)

	// Existence is checked once, before deleting.
	assert.Equal(t, []string{"link", "show", "veth1"}, runner.calls[0].Args)
	assert.Equal(t, 1, s.opened)

	assert.Equal(t, []string{"link", "del", "veth1"}, runner.calls[1].Args)
	assert.Equal(t, IPCmdTimeout, runner.calls[1].Timeout)
}

func TestManager_Remove_NoVeth(t *testing.T) {
	runner := &fakeRunner{results: []error{exitError(1)}}
	s := &sink{}
	m := newTestManager(runner, s)

	removed, err := m.Remove(context.Background(), "veth1")
	require.NoError(t, err)
	assert.False(t, removed)

	// Only the existence probe ran.
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"link", "show", "veth1"}, runner.calls[0].Args)
	assert.Equal(t, 1, s.opened)
}

func TestManager_Remove_DeleteFails(t *testing.T) {
	runner := &fakeRunner{results: []error{nil, exitError(2)}}
	m := newTestManager(runner, &sink{})

	removed, err := m.Remove(context.Background(), "veth1")
	require.Error(t, err)
	assert.False(t, removed)
	assert.Contains(t, err.Error(), `Failed to delete interface "veth1"`)
}

func TestManager_Remove_ProbeFails(t *testing.T) {
	notFound := subprocess.NewRunError("ip", nil, &exec.Error{Name: "ip", Err: exec.ErrNotFound}, -1, "")
	runner := &fakeRunner{results: []error{notFound}}
	m := newTestManager(runner, &sink{})

	removed, err := m.Remove(context.Background(), "veth1")
	require.Error(t, err)
	assert.False(t, removed)
	assert.True(t, subprocess.IsNotFound(err))
	assert.Len(t, runner.calls, 1)
}

func TestManager_Exists(t *testing.T) {
	runner := &fakeRunner{}
	s := &sink{}
	m := newTestManager(runner, s)

	exists, err := m.Exists(context.Background(), "veth1")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Equal(t, 1, s.opened)
	assert.Equal(t, 1, s.closed)

	require.Len(t, runner.calls, 1)
	call := runner.calls[0]
	assert.Equal(t, "ip", call.Name)
	assert.Equal(t, []string{"link", "show", "veth1"}, call.Args)
	assert.Zero(t, call.Timeout)
	assert.Equal(t, s, call.Stdout)
	assert.Equal(t, s, call.Stderr)
}

func TestManager_Exists_False(t *testing.T) {
	runner := &fakeRunner{results: []error{exitError(1)}}
	s := &sink{}
	m := newTestManager(runner, s)

	exists, err := m.Exists(context.Background(), "veth1")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Equal(t, 1, s.opened)
	assert.Equal(t, 1, s.closed)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"link", "show", "veth1"}, runner.calls[0].Args)
}

func TestManager_Exists_Errors(t *testing.T) {
	tests := []struct {
		name    string
		runErr  error
		sinkErr error
		calls   int
	}{
		{
			name:   "binary missing",
			runErr: subprocess.NewRunError("ip", nil, &exec.Error{Name: "ip", Err: exec.ErrNotFound}, -1, ""),
			calls:  1,
		},
		{
			name:   "canceled",
			runErr: subprocess.NewRunError("ip", nil, context.Canceled, -1, ""),
			calls:  1,
		},
		{
			name:    "sink",
			sinkErr: errors.New("permission denied"),
			calls:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{results: []error{tt.runErr}}
			s := &sink{err: tt.sinkErr}
			m := newTestManager(runner, s)

			exists, err := m.Exists(context.Background(), "veth1")
			assert.Error(t, err)
			assert.False(t, exists)
			assert.Equal(t, 1, s.opened)
			assert.Len(t, runner.calls, tt.calls)
		})
	}
}

func TestManager_SetAddress(t *testing.T) {
	runner := &fakeRunner{}
	m := newTestManager(runner, &sink{})

	mac, err := net.ParseMAC("ee:ee:ee:ee:ee:ee")
	require.NoError(t, err)

	err = m.SetAddress(context.Background(), "veth1", mac)
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"link", "set", "dev", "veth1", "address", "ee:ee:ee:ee:ee:ee"}, runner.calls[0].Args)
	assert.Equal(t, IPCmdTimeout, runner.calls[0].Timeout)
}

func TestManager_List(t *testing.T) {
	runner := &fakeRunner{
		stdout: "5: veth1@temp_name: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc noqueue state UP mode DEFAULT group default qlen 1000\\    link/ether 6a:1c:27:0b:4e:01 brd ff:ff:ff:ff:ff:ff\n",
	}
	m := newTestManager(runner, &sink{})

	links, err := m.List(context.Background())
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "veth1", links[0].Name)
	assert.Equal(t, "temp_name", links[0].Peer)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"-o", "link", "show", "type", "veth"}, runner.calls[0].Args)
}

func TestManager_CustomSettings(t *testing.T) {
	runner := &fakeRunner{}
	m := newTestManager(runner, &sink{})
	m.IPPath = "/sbin/ip"
	m.Timeout = IPCmdTimeout * 2

	err := m.Create(context.Background(), "veth1", "temp_name")
	require.NoError(t, err)

	for _, call := range runner.calls {
		assert.Equal(t, "/sbin/ip", call.Name)
		assert.Equal(t, IPCmdTimeout*2, call.Timeout)
	}
}

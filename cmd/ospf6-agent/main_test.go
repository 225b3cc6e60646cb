package main

import (
	"bytes"
	"testing"

	"ospf6-agent/internal/domain/entities"
	domainErrors "ospf6-agent/internal/domain/errors"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestApplyParams(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want entities.Params
	}{
		{
			name: "router id",
			args: []string{"--router-id", "10.1.1.1"},
			want: entities.Params{RouterID: "10.1.1.1"},
		},
		{
			name: "undeclared booleans stay nil",
			args: []string{"--interface", "swp1", "--area", "0.0.0.1"},
			want: entities.Params{Interface: "swp1", Area: "0.0.0.1"},
		},
		{
			name: "explicit false is declared",
			args: []string{"--interface", "swp1", "--point2point=false", "--passive"},
			want: entities.Params{Interface: "swp1", PointToPoint: boolPtr(false), Passive: boolPtr(true)},
		},
		{
			name: "state and saveconfig",
			args: []string{"--interface", "swp2", "--state", "absent", "--saveconfig"},
			want: entities.Params{Interface: "swp2", State: "absent", SaveConfig: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "apply"}
			opts := &applyOptions{}
			bindApplyFlags(cmd, opts)

			require.NoError(t, cmd.ParseFlags(tt.args))
			got := opts.params(cmd)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_InvalidParametersReportFailure(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{
			name: "router id and interface",
			args: []string{"apply", "--router-id", "10.1.1.1", "--interface", "swp1"},
			msg:  "parameters are mutually exclusive: router_id|interface",
		},
		{
			name: "interface option without interface",
			args: []string{"apply", "--area", "0.0.0.1"},
			msg:  "incorrect syntax. area must have an interface option. Example 'interface=swp1 area=0.0.0.1'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			root := newRootCmd()
			root.SetOut(&stdout)
			root.SetArgs(tt.args)

			err := root.Execute()

			assert.ErrorIs(t, err, errReported)
			assert.JSONEq(t, `{"changed":false,"failed":true,"msg":"`+tt.msg+`"}`, stdout.String())
		})
	}
}

func TestReportFailure_SystemErrorIncludesCause(t *testing.T) {
	var stdout bytes.Buffer

	err := reportFailure(&stdout, domainErrors.NewSystemError("failed to execute /usr/bin/cl-ospf6 router-id set 10.2.2.2", assert.AnError))

	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stdout.String(), `"failed":true`)
	assert.Contains(t, stdout.String(), assert.AnError.Error())
}

func TestWriteReport(t *testing.T) {
	var stdout bytes.Buffer

	require.NoError(t, writeReport(&stdout, entities.Report{Changed: true, Msg: "router-id updated"}))

	assert.JSONEq(t, `{"changed":true,"msg":"router-id updated"}`, stdout.String())
}

func TestVersionCmd(t *testing.T) {
	var stdout bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "ospf6-agent dev\n", stdout.String())
}

package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"ospf6-agent/internal/domain/entities"
	domainErrors "ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clOSPF6 = "/usr/bin/cl-ospf6"

func TestCommandEmitter_Emit(t *testing.T) {
	ctx := context.Background()
	executor := new(MockCommandExecutor)
	executor.On("ExecuteWithTimeout", ctx, time.Duration(0), clOSPF6, "interface", "set", "swp1", "area", "0.0.0.0").Return([]byte{}, nil)
	executor.On("ExecuteWithTimeout", ctx, time.Duration(0), clOSPF6, "interface", "set", "swp1", "passive").Return([]byte{}, nil)

	emitter := NewCommandEmitter(executor, services.NewCommandBuilder(clOSPF6), 0, newTestLogger())
	var result entities.ChangeResult

	executed, err := emitter.Emit(ctx, []entities.Discrepancy{
		{Action: entities.ActionEnableInterface, Interface: "swp1", Area: "0.0.0.0"},
		{Action: entities.ActionSetPassive, Interface: "swp1"},
	}, &result)

	require.NoError(t, err)
	assert.Equal(t, 2, executed)
	assert.Equal(t, entities.Report{
		Changed: true,
		Msg:     "OSPFv3 now enabled on swp1 area 0.0.0.0 swp1 is now OSPFv3 passive",
	}, result.Report())
	executor.AssertExpectations(t)
}

func TestCommandEmitter_StopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	executor := new(MockCommandExecutor)
	executor.On("ExecuteWithTimeout", ctx, time.Duration(0), clOSPF6, "interface", "set", "swp1", "area", "0.0.0.0").Return([]byte{}, nil)
	executor.On("ExecuteWithTimeout", ctx, time.Duration(0), clOSPF6, "interface", "set", "swp1", "network", "point-to-point").
		Return(nil, errors.New("exit status 1"))

	emitter := NewCommandEmitter(executor, services.NewCommandBuilder(clOSPF6), 0, newTestLogger())
	var result entities.ChangeResult

	executed, err := emitter.Emit(ctx, []entities.Discrepancy{
		{Action: entities.ActionEnableInterface, Interface: "swp1", Area: "0.0.0.0"},
		{Action: entities.ActionSetPointToPoint, Interface: "swp1"},
		{Action: entities.ActionSetPassive, Interface: "swp1"},
	}, &result)

	require.Error(t, err)
	assert.True(t, domainErrors.IsSystemError(err))
	assert.Equal(t, 1, executed)
	assert.Equal(t, []string{"OSPFv3 now enabled on swp1 area 0.0.0.0"}, result.Messages())
	executor.AssertNotCalled(t, "ExecuteWithTimeout", ctx, time.Duration(0), clOSPF6, "interface", "set", "swp1", "passive")
}

func TestCommandEmitter_NothingToDo(t *testing.T) {
	executor := new(MockCommandExecutor)
	emitter := NewCommandEmitter(executor, services.NewCommandBuilder(clOSPF6), 0, newTestLogger())
	var result entities.ChangeResult

	executed, err := emitter.Emit(context.Background(), nil, &result)

	require.NoError(t, err)
	assert.Zero(t, executed)
	assert.Equal(t, entities.Report{Changed: false, Msg: "no change"}, result.Report())
	executor.AssertNumberOfCalls(t, "ExecuteWithTimeout", 0)
}

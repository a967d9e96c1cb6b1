package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderAction_Target(t *testing.T) {
	tests := []struct {
		name    string
		action  OrderAction
		from    OrderStatus
		want    OrderStatus
		wantErr bool
	}{
		{name: "process pending", action: ActionProcess, from: StatusPending, want: StatusProcessing},
		{name: "process processing", action: ActionProcess, from: StatusProcessing, wantErr: true},
		{name: "complete processing", action: ActionComplete, from: StatusProcessing, want: StatusCompleted},
		{name: "complete pending", action: ActionComplete, from: StatusPending, wantErr: true},
		{name: "cancel pending", action: ActionCancel, from: StatusPending, want: StatusCancelled},
		{name: "cancel processing", action: ActionCancel, from: StatusProcessing, want: StatusCancelled},
		{name: "cancel completed", action: ActionCancel, from: StatusCompleted, wantErr: true},
		{name: "cancel cancelled", action: ActionCancel, from: StatusCancelled, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := testCase.action.Target(testCase.from)
			if testCase.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestCanTransition_TerminalStates(t *testing.T) {
	all := []OrderStatus{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled}
	for _, from := range []OrderStatus{StatusCompleted, StatusCancelled} {
		assert.True(t, from.IsTerminal())
		for _, to := range all {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, CanTransition(StatusPending, StatusCompleted))
	assert.False(t, CanTransition(StatusProcessing, StatusPending))
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("Processing")
	assert.NoError(t, err)
	assert.Equal(t, StatusProcessing, status)

	_, err = ParseOrderStatus("processing")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestRequireRole(t *testing.T) {
	customer := &User{ID: 1, Username: "ann"}
	staffFlag := &User{ID: 2, Username: "bob", IsStaff: true}
	staffGroup := &User{ID: 3, Username: "cid", Groups: []string{"Kitchen", StaffGroup}}

	assert.ErrorIs(t, RequireRole(nil, RoleCustomer), ErrUnauthenticated)
	assert.NoError(t, RequireRole(customer, RoleCustomer))
	assert.ErrorIs(t, RequireRole(customer, RoleStaff), ErrForbidden)
	assert.NoError(t, RequireRole(staffFlag, RoleStaff))
	assert.NoError(t, RequireRole(staffGroup, RoleStaff))
}

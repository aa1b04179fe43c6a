package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocateSupervisorNotifiesBothParties(t *testing.T) {
	g, _, _ := newTestGateway()
	admin := authed(t, g, "asha@sehra.in")
	client := authed(t, g, "chetna@sehra.in")
	supervisor := authed(t, g, "simran@sehra.in")

	g.AllocateSupervisor(admin, AllocationPayload{ClientID: 1, SupervisorID: 3})

	var assigned SupervisorAssignedPayload
	expectEvent(t, client, EventSupervisorAssigned, &assigned)
	require.Equal(t, int64(3), assigned.SupervisorID)
	require.Equal(t, "Simran", assigned.Name)
	require.Equal(t, "simran@sehra.in", assigned.Email)

	var counterpart ClientAssignedPayload
	expectEvent(t, supervisor, EventClientAssigned, &counterpart)
	require.Equal(t, int64(1), counterpart.ClientID)
	require.Equal(t, "Chetna", counterpart.Name)
	require.Equal(t, "chetna@sehra.in", counterpart.Email)
	require.Equal(t, "gold", counterpart.Package)

	var success AllocationSuccessPayload
	expectEvent(t, admin, EventAllocationSuccess, &success)
	require.True(t, success.Success)
}

func TestAllocateSupervisorNonAdminRejected(t *testing.T) {
	g, _, _ := newTestGateway()
	vendor := authed(t, g, "varun@sehra.in")
	client := authed(t, g, "chetna@sehra.in")
	supervisor := authed(t, g, "simran@sehra.in")

	g.AllocateSupervisor(vendor, AllocationPayload{ClientID: 1, SupervisorID: 3})

	event, _ := takeEvent(t, vendor)
	require.Equal(t, EventError, event)

	expectNoEvent(t, client)
	expectNoEvent(t, supervisor)
}

func TestAllocateSupervisorUnauthenticatedRejected(t *testing.T) {
	g, _, _ := newTestGateway()
	client := authed(t, g, "chetna@sehra.in")

	c := g.Accept(nil)
	g.AllocateSupervisor(c, AllocationPayload{ClientID: 1, SupervisorID: 3})

	event, _ := takeEvent(t, c)
	require.Equal(t, EventError, event)
	expectNoEvent(t, client)
}

func TestAllocateSupervisorUnknownParty(t *testing.T) {
	g, _, _ := newTestGateway()
	admin := authed(t, g, "asha@sehra.in")

	g.AllocateSupervisor(admin, AllocationPayload{ClientID: 999, SupervisorID: 3})

	event, _ := takeEvent(t, admin)
	require.Equal(t, EventError, event)
}

func TestAllocateSupervisorOfflinePartiesDropSilently(t *testing.T) {
	g, _, _ := newTestGateway()
	admin := authed(t, g, "asha@sehra.in")

	// Neither client nor supervisor is connected; presence events are
	// ephemeral, the allocation still succeeds for the admin.
	g.AllocateSupervisor(admin, AllocationPayload{ClientID: 1, SupervisorID: 3})

	var success AllocationSuccessPayload
	expectEvent(t, admin, EventAllocationSuccess, &success)
	require.True(t, success.Success)
}

func TestAllocateSupervisorMultiTabClient(t *testing.T) {
	g, _, _ := newTestGateway()
	admin := authed(t, g, "asha@sehra.in")
	tab1 := authed(t, g, "chetna@sehra.in")
	tab2 := authed(t, g, "chetna@sehra.in")

	g.AllocateSupervisor(admin, AllocationPayload{ClientID: 1, SupervisorID: 3})

	expectEvent(t, tab1, EventSupervisorAssigned, nil)
	expectEvent(t, tab2, EventSupervisorAssigned, nil)
	expectEvent(t, admin, EventAllocationSuccess, nil)
}

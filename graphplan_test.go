package graphplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// provisioningActions returns the exact action catalog cmd/graphplan-demo
// runs: reserve two addresses, create the matching DNS records, hold the
// host in downtime across a reimage, then bring it into service.
func provisioningActions() []Action {
	return []Action{
		NewAction("reserve_ip_address", nil,
			NewPropositionSet(Prop("ip_address"))),
		NewAction("reserve_ip_address_ipmi", nil,
			NewPropositionSet(Prop("ip_address_ipmi"))),
		NewAction("create_dns_record",
			NewPropositionSet(Prop("ip_address")),
			NewPropositionSet(Prop("dns_record"))),
		NewAction("create_dns_record_ipmi",
			NewPropositionSet(Prop("ip_address_ipmi")),
			NewPropositionSet(Prop("dns_record_ipmi"))),
		NewAction("set_downtime", nil,
			NewPropositionSet(Prop("downtime"))),
		NewAction("remove_downtime",
			NewPropositionSet(Prop("downtime")),
			NewPropositionSet(NegProp("downtime"))),
		NewAction("reimage",
			NewPropositionSet(
				Prop("ip_address"),
				Prop("dns_record"),
				Prop("dns_record_ipmi"),
				Prop("downtime"),
			),
			NewPropositionSet(Prop("image"))),
		NewAction("set_in_service",
			NewPropositionSet(
				Prop("image"),
				NegProp("downtime"),
			),
			NewPropositionSet(Prop("status__in-service"))),
	}
}

// TestPlanProvisioningScenario pins the demo scenario: starting from a host
// that already has ip_address but not ip_address_ipmi or downtime, Plan
// must reserve the IPMI address, create both DNS records, cycle downtime
// around a reimage, and bring the host into service. ip_address is already
// held in state, so reserve_ip_address must not appear in the plan.
func TestPlanProvisioningScenario(t *testing.T) {
	host := map[string]any{
		"ip_address":      "169.254.169.1",
		"ip_address_ipmi": "",
		"downtime":        false,
	}
	state := StateFromWorld(host)
	goal := NewPropositionSet(Prop("status__in-service"))
	actions := provisioningActions()

	p := New()
	plan, err := p.Plan(state, goal, actions)
	require.NoError(t, err)

	names := make(map[string]bool, len(plan))
	for _, a := range plan {
		names[a.Name] = true
	}

	for _, want := range []string{
		"reserve_ip_address_ipmi",
		"create_dns_record",
		"create_dns_record_ipmi",
		"set_downtime",
		"reimage",
		"remove_downtime",
		"set_in_service",
	} {
		assert.True(t, names[want], "plan missing expected action %q", want)
	}
	assert.False(t, names["reserve_ip_address"], "ip_address was already held in state and should not be re-reserved")
}

// TestPlanStateUpdateRebuildsDependentIPMIChain pins PlanStateUpdate's
// dependent-effects invalidation against the provisioning scenario's
// actual dependency chain: updating ip_address_ipmi must force
// create_dns_record_ipmi to rerun (its requirement depends on the updated
// fact), but must not touch ip_address or force reserve_ip_address or
// reimage to rerun, since neither depends on ip_address_ipmi.
func TestPlanStateUpdateRebuildsDependentIPMIChain(t *testing.T) {
	host := map[string]any{
		"ip_address":      "169.254.169.1",
		"ip_address_ipmi": "169.254.169.2",
		"downtime":        false,
	}
	state := StateFromWorld(host)
	state.Add(Prop("dns_record"))
	state.Add(Prop("dns_record_ipmi"))
	state.Add(Prop("image"))
	state.Add(Prop("status__in-service"))
	actions := provisioningActions()

	update := NewPropositionSet(Prop("ip_address_ipmi"))

	p := New()
	plan, err := p.PlanStateUpdate(state, update, actions)
	require.NoError(t, err)

	names := make(map[string]bool, len(plan))
	for _, a := range plan {
		names[a.Name] = true
	}

	assert.True(t, names["reserve_ip_address_ipmi"], "ip_address_ipmi was invalidated directly and must be rebuilt")
	assert.True(t, names["create_dns_record_ipmi"], "create_dns_record_ipmi depends on ip_address_ipmi and must rerun")
	assert.False(t, names["reserve_ip_address"], "ip_address was untouched by the update and must not be re-reserved")
	assert.False(t, names["reimage"], "reimage's other requirements were retained and it must not rerun")
}

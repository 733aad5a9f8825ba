package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mguryev/graph-plan/internal/domain"
)

const provisioningYAML = `
name: provisioning
version: "1"
actions:
  - name: reserve_ip_address
    requires_not: [ip_reserved]
    effects: [ip_reserved]
  - name: create_dns_record
    requires: [ip_reserved]
    effects: [dns_created]
  - name: set_downtime
    requires_not: [in_downtime]
    effects: [in_downtime]
  - name: remove_downtime
    requires: [in_downtime]
    effects_not: [in_downtime]
`

func TestLoadConvertsEntriesToActions(t *testing.T) {
	actions, err := Load(strings.NewReader(provisioningYAML))
	require.NoError(t, err)
	require.Len(t, actions, 4)

	byName := make(map[string]domain.Action, len(actions))
	for _, a := range actions {
		byName[a.Name] = a
	}

	reserve := byName["reserve_ip_address"]
	assert.True(t, reserve.Requirements.Has(domain.NegProp("ip_reserved")))
	assert.True(t, reserve.Effects.Has(domain.Prop("ip_reserved")))

	createDNS := byName["create_dns_record"]
	assert.True(t, createDNS.Requirements.Has(domain.Prop("ip_reserved")))
	assert.True(t, createDNS.Effects.Has(domain.Prop("dns_created")))

	removeDowntime := byName["remove_downtime"]
	assert.True(t, removeDowntime.Effects.Has(domain.NegProp("in_downtime")))
}

func TestLoadRejectsDuplicateNames(t *testing.T) {
	const dup = `
name: broken
actions:
  - name: a
    effects: [x]
  - name: a
    effects: [y]
`
	_, err := Load(strings.NewReader(dup))
	assert.ErrorContains(t, err, "duplicate action name")
}

func TestLoadRejectsUnnamedAction(t *testing.T) {
	const missing = `
name: broken
actions:
  - effects: [x]
`
	_, err := Load(strings.NewReader(missing))
	assert.ErrorContains(t, err, "no name")
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	const typo = `
name: broken
actions:
  - name: a
    effcts: [x]
`
	_, err := Load(strings.NewReader(typo))
	assert.Error(t, err)
}

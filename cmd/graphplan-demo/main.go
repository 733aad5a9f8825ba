// Command graphplan-demo runs the provisioning scenario from
// graph_plan's original demo: reserve addresses, create DNS records,
// hold the host in downtime, reimage it, and bring it into service.
// Output goes through zerolog, logging startup and the resulting plan as
// structured events rather than bare prints.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	graphplan "github.com/mguryev/graph-plan"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})

	host := map[string]any{
		"ip_address":      "169.254.169.1",
		"ip_address_ipmi": "",
		"downtime":        false,
	}

	state := graphplan.StateFromWorld(host)
	goal := graphplan.NewPropositionSet(graphplan.Prop("status__in-service"))

	actions := []graphplan.Action{
		graphplan.NewAction("reserve_ip_address", nil,
			graphplan.NewPropositionSet(graphplan.Prop("ip_address"))),
		graphplan.NewAction("reserve_ip_address_ipmi", nil,
			graphplan.NewPropositionSet(graphplan.Prop("ip_address_ipmi"))),
		graphplan.NewAction("create_dns_record",
			graphplan.NewPropositionSet(graphplan.Prop("ip_address")),
			graphplan.NewPropositionSet(graphplan.Prop("dns_record"))),
		graphplan.NewAction("create_dns_record_ipmi",
			graphplan.NewPropositionSet(graphplan.Prop("ip_address_ipmi")),
			graphplan.NewPropositionSet(graphplan.Prop("dns_record_ipmi"))),
		graphplan.NewAction("set_downtime", nil,
			graphplan.NewPropositionSet(graphplan.Prop("downtime"))),
		graphplan.NewAction("remove_downtime",
			graphplan.NewPropositionSet(graphplan.Prop("downtime")),
			graphplan.NewPropositionSet(graphplan.NegProp("downtime"))),
		graphplan.NewAction("reimage",
			graphplan.NewPropositionSet(
				graphplan.Prop("ip_address"),
				graphplan.Prop("dns_record"),
				graphplan.Prop("dns_record_ipmi"),
				graphplan.Prop("downtime"),
			),
			graphplan.NewPropositionSet(graphplan.Prop("image"))),
		graphplan.NewAction("set_in_service",
			graphplan.NewPropositionSet(
				graphplan.Prop("image"),
				graphplan.NegProp("downtime"),
			),
			graphplan.NewPropositionSet(graphplan.Prop("status__in-service"))),
	}

	log.Info().Int("state_facts", len(state)).Int("available_actions", len(actions)).Msg("starting provisioning scenario")

	planner := graphplan.New()
	plan, err := planner.Plan(state, goal, actions)
	if err != nil {
		log.Fatal().Err(err).Msg("no plan could be found")
	}

	log.Info().Int("steps", len(plan)).Msg("plan found")
	for i, action := range plan {
		log.Info().Int("step", i+1).Str("action", action.Name).Msg("")
	}
}
